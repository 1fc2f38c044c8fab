package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/server/http/dto"
	"github.com/polkiloo/commerce-admin/internal/usecase"
)

const recordedOnLayout = "2006-01-02"

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errMalformedBody)
		return
	}

	in := usecase.CreateOrderInput{
		CustomerID:      req.CustomerID,
		ShippingAddress: req.ShippingAddress,
		Items:           make([]usecase.CreateOrderItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, usecase.CreateOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Page handles GET /api/orders/page.
func (h *OrderHandler) Page(c *gin.Context) {
	req, err := pageRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}
	q := usecase.OrderQuery{Request: req}
	if status := queryString(c, "status"); status != nil {
		s := model.OrderStatus(*status)
		q.Status = &s
	}

	page, err := h.facade.OrdersPage(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PageResponse[dto.OrderResponse]{
		Content:       toOrderResponses(page.Content),
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
		Page:          page.Page,
		Size:          page.Size,
	})
}

// Patch handles PATCH /api/orders/:id.
func (h *OrderHandler) Patch(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	var req dto.PatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errMalformedBody)
		return
	}

	in := usecase.PatchOrderInput{
		ShippingAddress: req.ShippingAddress,
		Returned:        req.Returned,
		Version:         req.Version,
	}
	if req.Status != nil {
		s := model.OrderStatus(*req.Status)
		in.Status = &s
	}

	order, err := h.facade.PatchOrder(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.facade.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Pending handles GET /api/orders/pending.
func (h *OrderHandler) Pending(c *gin.Context) {
	pending, err := h.facade.PendingOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.PendingOrderResponse, 0, len(pending))
	for _, p := range pending {
		resp = append(resp, dto.PendingOrderResponse{
			OrderID:    p.OrderID,
			Reference:  p.Reference,
			GrandTotal: dto.Money(p.GrandTotal),
			CreatedAt:  p.CreatedAt,
			ItemCount:  p.ItemCount,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func toOrderResponses(orders []usecase.OrderResult) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

func toOrderResponse(order usecase.OrderResult) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   dto.Money(item.UnitPrice),
			Quantity:    item.Quantity,
			Total:       dto.Money(item.Total),
			Date:        item.RecordedOn.Format(recordedOnLayout),
			Width:       dto.OptionalNumber(item.Width),
			Height:      dto.OptionalNumber(item.Height),
			Depth:       dto.OptionalNumber(item.Depth),
		})
	}
	return dto.OrderResponse{
		ID:        order.ID,
		Reference: order.Reference,
		Customer: dto.CustomerResponse{
			ID:    order.Customer.ID,
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
		},
		Status:          string(order.Status),
		Returned:        order.Returned,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Version:         order.Version,
		Items:           items,
		Subtotal:        dto.Money(order.Totals.Subtotal),
		DeliveryFee:     dto.Money(order.Totals.DeliveryFee),
		TaxAmount:       dto.Money(order.Totals.TaxAmount),
		GrandTotal:      dto.Money(order.Totals.GrandTotal),
	}
}
