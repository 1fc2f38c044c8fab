package handlers

import (
	"context"

	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
	"github.com/polkiloo/commerce-admin/internal/usecase"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*usecase.OrderResult, error)
	PatchOrder(ctx context.Context, id int64, in usecase.PatchOrderInput) (*usecase.OrderResult, error)
	DeleteOrder(ctx context.Context, id int64) error
	Order(ctx context.Context, id int64) (*usecase.OrderResult, error)
	Orders(ctx context.Context) ([]usecase.OrderResult, error)
	OrdersPage(ctx context.Context, q usecase.OrderQuery) (paging.Page[usecase.OrderResult], error)
	PendingOrders(ctx context.Context) ([]model.PendingOrder, error)
}

// SearchFacade provides catalog searches.
type SearchFacade interface {
	Products(ctx context.Context, q usecase.ProductQuery) (paging.Page[model.Product], error)
	Users(ctx context.Context, q usecase.UserQuery) (paging.Page[model.User], error)
	Reviews(ctx context.Context, q usecase.ReviewQuery) (paging.Page[model.Review], error)
}

// HealthFacade reports readiness of backing services.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// CommerceFacade aggregates the full set of operations used across handlers.
type CommerceFacade interface {
	OrderFacade
	SearchFacade
	HealthFacade
}
