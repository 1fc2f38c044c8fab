package repository

import (
	"context"

	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
)

// OrderRepository describes persistence operations with orders and their items.
type OrderRepository interface {
	paging.Source[model.Order]

	// Create stores the order and all of its items atomically and returns
	// the stored copy with identifiers assigned.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	// GetByID returns the order including soft-deleted ones.
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// Update writes mutable fields when the stored version equals order.Version
	// and returns the stored copy with the next version.
	Update(ctx context.Context, order *model.Order) (*model.Order, error)
	// Find returns every order matching spec, newest first.
	Find(ctx context.Context, spec filter.Spec) ([]model.Order, error)
}
