package repository

import (
	"context"

	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
)

// ProductCatalog resolves products by id.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
}

// ProductRepository searches and resolves catalog products.
type ProductRepository interface {
	ProductCatalog
	paging.Source[model.Product]
}
