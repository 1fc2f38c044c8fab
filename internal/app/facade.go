package app

import (
	"context"

	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
	"github.com/polkiloo/commerce-admin/internal/usecase"
)

// HealthChecker reports whether the storage backend can serve requests.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CommerceFacade exposes order and catalog use cases to the HTTP layer.
type CommerceFacade struct {
	orders *usecase.OrderUseCase
	search *usecase.SearchUseCase
	health HealthChecker
}

func NewCommerceFacade(orders *usecase.OrderUseCase, search *usecase.SearchUseCase, health HealthChecker) *CommerceFacade {
	return &CommerceFacade{orders: orders, search: search, health: health}
}

func (f *CommerceFacade) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*usecase.OrderResult, error) {
	return f.orders.CreateOrder(ctx, in)
}

func (f *CommerceFacade) PatchOrder(ctx context.Context, id int64, in usecase.PatchOrderInput) (*usecase.OrderResult, error) {
	return f.orders.PatchOrder(ctx, id, in)
}

func (f *CommerceFacade) DeleteOrder(ctx context.Context, id int64) error {
	return f.orders.SoftDeleteOrder(ctx, id)
}

func (f *CommerceFacade) Order(ctx context.Context, id int64) (*usecase.OrderResult, error) {
	return f.orders.GetOrder(ctx, id)
}

func (f *CommerceFacade) Orders(ctx context.Context) ([]usecase.OrderResult, error) {
	return f.orders.ListOrders(ctx)
}

func (f *CommerceFacade) OrdersPage(ctx context.Context, q usecase.OrderQuery) (paging.Page[usecase.OrderResult], error) {
	return f.orders.PageOrders(ctx, q)
}

func (f *CommerceFacade) PendingOrders(ctx context.Context) ([]model.PendingOrder, error) {
	pending, err := f.orders.PendingOrders(ctx)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return []model.PendingOrder{}, nil
	}
	return pending, nil
}

func (f *CommerceFacade) Products(ctx context.Context, q usecase.ProductQuery) (paging.Page[model.Product], error) {
	return f.search.Products(ctx, q)
}

func (f *CommerceFacade) Users(ctx context.Context, q usecase.UserQuery) (paging.Page[model.User], error) {
	return f.search.Users(ctx, q)
}

func (f *CommerceFacade) Reviews(ctx context.Context, q usecase.ReviewQuery) (paging.Page[model.Review], error) {
	return f.search.Reviews(ctx, q)
}

func (f *CommerceFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
