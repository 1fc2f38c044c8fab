package dto

import "time"

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	CustomerID      int64                    `json:"customerId"`
	ShippingAddress string                   `json:"shippingAddress"`
	Items           []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest names a product and quantity.
type CreateOrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// PatchOrderRequest is the body of PATCH /api/orders/:id. Omitted fields are left untouched.
type PatchOrderRequest struct {
	ShippingAddress *string `json:"shippingAddress"`
	Returned        *bool   `json:"returned"`
	Status          *string `json:"status"`
	Version         *int64  `json:"version"`
}

// CustomerResponse is the buyer embedded in an order.
type CustomerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderItemResponse is a frozen item snapshot.
type OrderItemResponse struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   Money   `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Total       Money   `json:"total"`
	Date        string  `json:"date"`
	Width       *Number `json:"width"`
	Height      *Number `json:"height"`
	Depth       *Number `json:"depth"`
}

// OrderResponse describes an order with computed totals.
type OrderResponse struct {
	ID              int64               `json:"id"`
	Reference       string              `json:"reference"`
	Customer        CustomerResponse    `json:"customer"`
	Status          string              `json:"status"`
	Returned        bool                `json:"returned"`
	ShippingAddress string              `json:"shippingAddress"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Version         int64               `json:"version"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        Money               `json:"subtotal"`
	DeliveryFee     Money               `json:"deliveryFee"`
	TaxAmount       Money               `json:"taxAmount"`
	GrandTotal      Money               `json:"grandTotal"`
}

// PendingOrderResponse summarizes an order awaiting delivery.
type PendingOrderResponse struct {
	OrderID    int64     `json:"orderId"`
	Reference  string    `json:"reference"`
	GrandTotal Money     `json:"grandTotal"`
	CreatedAt  time.Time `json:"createdAt"`
	ItemCount  int       `json:"itemCount"`
}
