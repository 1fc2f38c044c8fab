package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/commerce-admin/internal/domain/pricing"
)

// OrderStatus describes delivery lifecycle.
type OrderStatus string

const (
	OrderStatusOrdered   OrderStatus = "ORDERED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusOrdered:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {OrderStatusCancelled},
	OrderStatusCancelled: nil,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether the move from s to next is in the transition table.
// Same-state moves are never allowed.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a customer purchase with frozen item snapshots and derived totals.
type Order struct {
	ID              int64
	Reference       string
	CustomerID      int64
	Status          OrderStatus
	ShippingAddress string
	Returned        bool
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	TaxAmount       decimal.Decimal
	GrandTotal      decimal.Decimal
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
	Items           []OrderItem
}

// Deleted reports whether the order was soft deleted.
func (o *Order) Deleted() bool {
	return o.DeletedAt != nil
}

// Lines returns the pricing view of the order items.
func (o *Order) Lines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, item.Line())
	}
	return lines
}

// ApplyTotals stores computed totals on the order.
func (o *Order) ApplyTotals(t pricing.Totals) {
	o.Subtotal = t.Subtotal
	o.DeliveryFee = t.DeliveryFee
	o.TaxAmount = t.TaxAmount
	o.GrandTotal = t.GrandTotal
}

// Totals returns the stored totals.
func (o *Order) Totals() pricing.Totals {
	return pricing.Totals{
		Subtotal:    o.Subtotal,
		DeliveryFee: o.DeliveryFee,
		TaxAmount:   o.TaxAmount,
		GrandTotal:  o.GrandTotal,
	}
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	c := *o
	if o.DeletedAt != nil {
		at := *o.DeletedAt
		c.DeletedAt = &at
	}
	c.Items = append([]OrderItem(nil), o.Items...)
	return &c
}

// OrderItem is a frozen snapshot of a product inside an order.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	RecordedOn  time.Time
	Width       decimal.NullDecimal
	Height      decimal.NullDecimal
	Depth       decimal.NullDecimal
}

// Line returns the pricing view of the item.
func (i OrderItem) Line() pricing.Line {
	return pricing.Line{
		UnitPrice: i.UnitPrice,
		Quantity:  i.Quantity,
		Width:     i.Width,
		Height:    i.Height,
		Depth:     i.Depth,
	}
}

// PendingOrder is the summary of an order awaiting delivery.
type PendingOrder struct {
	OrderID    int64
	Reference  string
	GrandTotal decimal.Decimal
	CreatedAt  time.Time
	ItemCount  int
}
