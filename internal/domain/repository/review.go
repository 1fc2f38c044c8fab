package repository

import (
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
)

// ReviewRepository searches product reviews.
type ReviewRepository interface {
	paging.Source[model.Review]
}
