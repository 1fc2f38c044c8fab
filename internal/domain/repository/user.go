package repository

import (
	"context"

	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
)

// CustomerDirectory resolves buyers by id.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
}

// UserRepository searches user accounts.
type UserRepository interface {
	paging.Source[model.User]
}
