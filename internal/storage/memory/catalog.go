package memory

import (
	"context"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
)

func (d *customerDirectory) GetCustomer(_ context.Context, id int64) (*model.Customer, error) {
	s := d.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, &domainErrors.CustomerNotFoundError{CustomerID: id}
	}
	c := u.Customer()
	return &c, nil
}

func (r *productRepository) GetProduct(_ context.Context, id int64) (*model.Product, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, &domainErrors.ProductNotFoundError{ProductID: id}
	}
	out := *p
	return &out, nil
}

func (r *productRepository) Count(_ context.Context, spec filter.Spec) (int64, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()
	return count(values(s.products), viewProduct, spec), nil
}

func (r *productRepository) Fetch(_ context.Context, spec filter.Spec, w paging.Window) ([]model.Product, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAll(window(values(s.products), viewProduct, spec, w)), nil
}

func (r *userRepository) Count(_ context.Context, spec filter.Spec) (int64, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()
	return count(values(s.users), viewUser, spec), nil
}

func (r *userRepository) Fetch(_ context.Context, spec filter.Spec, w paging.Window) ([]model.User, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := copyAll(window(values(s.users), viewUser, spec, w))
	for i := range users {
		users[i].SegmentIDs = append([]int64(nil), users[i].SegmentIDs...)
	}
	return users, nil
}

func (r *reviewRepository) Count(_ context.Context, spec filter.Spec) (int64, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()
	return count(values(s.reviews), viewReview, spec), nil
}

func (r *reviewRepository) Fetch(_ context.Context, spec filter.Spec, w paging.Window) ([]model.Review, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAll(window(values(s.reviews), viewReview, spec, w)), nil
}

func values[T any](m map[int64]*T) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func copyAll[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out
}
