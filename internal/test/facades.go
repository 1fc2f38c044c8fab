package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
	"github.com/polkiloo/commerce-admin/internal/domain/pricing"
	"github.com/polkiloo/commerce-admin/internal/usecase"
)

// SampleOrder returns an ordered order result priced at 200/10/42/252.
func SampleOrder(id int64) usecase.OrderResult {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return usecase.OrderResult{
		ID:              id,
		Reference:       "ORD20240301120000-0a1b2c3d",
		Customer:        usecase.CustomerSummary{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com"},
		Status:          model.OrderStatusOrdered,
		ShippingAddress: "1 Main St",
		CreatedAt:       created,
		UpdatedAt:       created,
		Items: []usecase.OrderItemResult{{
			ID:          1,
			ProductID:   10,
			ProductName: "Desk",
			UnitPrice:   decimal.NewFromInt(100),
			Quantity:    2,
			Total:       decimal.NewFromInt(200),
			RecordedOn:  created,
			Width:       decimal.NewNullDecimal(decimal.RequireFromString("0.5")),
			Height:      decimal.NewNullDecimal(decimal.NewFromInt(1)),
			Depth:       decimal.NewNullDecimal(decimal.NewFromInt(1)),
		}},
		Totals: pricing.Totals{
			Subtotal:    decimal.NewFromInt(200),
			DeliveryFee: decimal.NewFromInt(10),
			TaxAmount:   decimal.NewFromInt(42),
			GrandTotal:  decimal.NewFromInt(252),
		},
	}
}

// CommerceFacadeStub provides controllable behaviour for every HTTP endpoint.
type CommerceFacadeStub struct {
	CreateFn   func(context.Context, usecase.CreateOrderInput) (*usecase.OrderResult, error)
	PatchFn    func(context.Context, int64, usecase.PatchOrderInput) (*usecase.OrderResult, error)
	DeleteFn   func(context.Context, int64) error
	OrderFn    func(context.Context, int64) (*usecase.OrderResult, error)
	OrdersFn   func(context.Context) ([]usecase.OrderResult, error)
	PageFn     func(context.Context, usecase.OrderQuery) (paging.Page[usecase.OrderResult], error)
	PendingFn  func(context.Context) ([]model.PendingOrder, error)
	ProductsFn func(context.Context, usecase.ProductQuery) (paging.Page[model.Product], error)
	UsersFn    func(context.Context, usecase.UserQuery) (paging.Page[model.User], error)
	ReviewsFn  func(context.Context, usecase.ReviewQuery) (paging.Page[model.Review], error)
	HealthErr  error
}

// CreateOrder delegates to CreateFn or echoes a sample order.
func (s CommerceFacadeStub) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*usecase.OrderResult, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	order := SampleOrder(1)
	order.ShippingAddress = in.ShippingAddress
	return &order, nil
}

// PatchOrder delegates to PatchFn or returns the sample order.
func (s CommerceFacadeStub) PatchOrder(ctx context.Context, id int64, in usecase.PatchOrderInput) (*usecase.OrderResult, error) {
	if s.PatchFn != nil {
		return s.PatchFn(ctx, id, in)
	}
	order := SampleOrder(id)
	return &order, nil
}

// DeleteOrder delegates to DeleteFn.
func (s CommerceFacadeStub) DeleteOrder(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// Order delegates to OrderFn or returns the sample order.
func (s CommerceFacadeStub) Order(ctx context.Context, id int64) (*usecase.OrderResult, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	order := SampleOrder(id)
	return &order, nil
}

// Orders delegates to OrdersFn or returns a single sample order.
func (s CommerceFacadeStub) Orders(ctx context.Context) ([]usecase.OrderResult, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return []usecase.OrderResult{SampleOrder(1)}, nil
}

// OrdersPage delegates to PageFn or returns an empty page.
func (s CommerceFacadeStub) OrdersPage(ctx context.Context, q usecase.OrderQuery) (paging.Page[usecase.OrderResult], error) {
	if s.PageFn != nil {
		return s.PageFn(ctx, q)
	}
	return paging.Page[usecase.OrderResult]{Page: q.Page, Size: q.Size}, nil
}

// PendingOrders delegates to PendingFn.
func (s CommerceFacadeStub) PendingOrders(ctx context.Context) ([]model.PendingOrder, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx)
	}
	return nil, nil
}

// Products delegates to ProductsFn.
func (s CommerceFacadeStub) Products(ctx context.Context, q usecase.ProductQuery) (paging.Page[model.Product], error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, q)
	}
	return paging.Page[model.Product]{Page: q.Page, Size: q.Size}, nil
}

// Users delegates to UsersFn.
func (s CommerceFacadeStub) Users(ctx context.Context, q usecase.UserQuery) (paging.Page[model.User], error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, q)
	}
	return paging.Page[model.User]{Page: q.Page, Size: q.Size}, nil
}

// Reviews delegates to ReviewsFn.
func (s CommerceFacadeStub) Reviews(ctx context.Context, q usecase.ReviewQuery) (paging.Page[model.Review], error) {
	if s.ReviewsFn != nil {
		return s.ReviewsFn(ctx, q)
	}
	return paging.Page[model.Review]{Page: q.Page, Size: q.Size}, nil
}

// HealthCheck returns HealthErr.
func (s CommerceFacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}
