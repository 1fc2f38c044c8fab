package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
	"github.com/polkiloo/commerce-admin/internal/domain/repository"
)

var userSegments = filter.Relation{Table: "user_segments", OwnerKey: "user_id", Key: "segment_id"}

var (
	productSortColumns = map[string]string{
		"createdAt": paging.CreatedAtColumn,
		"reference": "reference",
		"price":     "price",
		"stock":     "stock",
		"sales":     "sales",
	}
	userSortColumns = map[string]string{
		"createdAt": paging.CreatedAtColumn,
		"firstName": "first_name",
		"lastName":  "last_name",
	}
	reviewSortColumns = map[string]string{
		"createdAt": paging.CreatedAtColumn,
		"date":      "date",
		"rating":    "rating",
		"comment":   "comment",
		"status":    "status",
	}
)

// ProductQuery filters products. Nil fields do not constrain the result.
type ProductQuery struct {
	Text       string
	CategoryID *int64
	StockFrom  *int
	StockTo    *int
	paging.Request
}

// UserQuery filters users. Nil fields do not constrain the result.
type UserQuery struct {
	Text          string
	HasNewsletter *bool
	SegmentID     *int64
	paging.Request
}

// ReviewQuery filters the reviews of one product.
type ReviewQuery struct {
	ProductID int64
	Status    *model.ReviewStatus
	RatingMin *int
	RatingMax *int
	Text      string
	paging.Request
}

// SearchUseCase runs read-only searches over catalog resources.
type SearchUseCase struct {
	products *paging.Executor[model.Product]
	users    *paging.Executor[model.User]
	reviews  *paging.Executor[model.Review]
}

// NewSearchUseCase constructs SearchUseCase.
func NewSearchUseCase(
	products repository.ProductRepository,
	users repository.UserRepository,
	reviews repository.ReviewRepository,
	limits paging.Limits,
) *SearchUseCase {
	return &SearchUseCase{
		products: paging.NewExecutor[model.Product](products, productSortColumns, limits),
		users:    paging.NewExecutor[model.User](users, userSortColumns, limits),
		reviews:  paging.NewExecutor[model.Review](reviews, reviewSortColumns, limits),
	}
}

// Products searches by reference text, category and stock range.
func (u *SearchUseCase) Products(ctx context.Context, q ProductQuery) (paging.Page[model.Product], error) {
	spec := filter.Build([]filter.Clause{filter.NotDeleted()},
		filter.Text(q.Text, "reference"),
		filter.Equal("category_id", q.CategoryID),
		filter.Between("stock", q.StockFrom, q.StockTo),
	)
	return u.products.Execute(ctx, spec, q.Request)
}

// Users searches by name text, newsletter flag and segment membership.
func (u *SearchUseCase) Users(ctx context.Context, q UserQuery) (paging.Page[model.User], error) {
	spec := filter.Build([]filter.Clause{filter.NotDeleted()},
		filter.Text(q.Text, "first_name", "last_name"),
		filter.Equal("has_newsletter", q.HasNewsletter),
		filter.MemberOf(userSegments, q.SegmentID),
	)
	return u.users.Execute(ctx, spec, q.Request)
}

// Reviews searches the reviews of a product by status, rating range and comment text.
func (u *SearchUseCase) Reviews(ctx context.Context, q ReviewQuery) (paging.Page[model.Review], error) {
	if q.ProductID <= 0 {
		return paging.Page[model.Review]{}, domainErrors.ErrInvalidIdentifier
	}

	var status *string
	if q.Status != nil {
		if !q.Status.Valid() {
			return paging.Page[model.Review]{}, &domainErrors.InvalidParameterError{Name: "status", Value: string(*q.Status)}
		}
		s := string(*q.Status)
		status = &s
	}

	spec := filter.Build(
		[]filter.Clause{
			filter.Equality{Field: "product_id", Value: q.ProductID},
			filter.NotDeleted(),
		},
		filter.Equal("status", status),
		filter.Between("rating", q.RatingMin, q.RatingMax),
		filter.Text(q.Text, "comment"),
	)
	return u.reviews.Execute(ctx, spec, q.Request)
}
