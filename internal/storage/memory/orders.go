package memory

import (
	"context"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
)

func (r *orderRepository) Create(_ context.Context, order *model.Order) (*model.Order, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orders {
		if existing.Reference == order.Reference {
			return nil, domainErrors.ErrDuplicateReference
		}
	}

	stored := order.Clone()
	s.nextOrderID++
	stored.ID = s.nextOrderID
	for i := range stored.Items {
		s.nextItemID++
		stored.Items[i].ID = s.nextItemID
		stored.Items[i].OrderID = stored.ID
	}
	s.orders[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *orderRepository) GetByID(_ context.Context, id int64) (*model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	return order.Clone(), nil
}

func (r *orderRepository) Update(_ context.Context, order *model.Order) (*model.Order, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[order.ID]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	if stored.Version != order.Version {
		return nil, domainErrors.ErrVersionConflict
	}

	stored.ShippingAddress = order.ShippingAddress
	stored.Returned = order.Returned
	stored.Status = order.Status
	stored.ApplyTotals(order.Totals())
	stored.UpdatedAt = order.UpdatedAt
	if order.DeletedAt != nil {
		at := *order.DeletedAt
		stored.DeletedAt = &at
	}
	stored.Version++
	return stored.Clone(), nil
}

func (r *orderRepository) Find(_ context.Context, spec filter.Spec) ([]model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	newestFirst := paging.Window{OrderBy: []paging.OrderBy{
		{Column: paging.CreatedAtColumn, Desc: true},
		{Column: paging.IDColumn, Desc: true},
	}}
	return cloneOrders(window(s.orderSnapshot(), viewOrder, spec, newestFirst)), nil
}

func (r *orderRepository) Count(_ context.Context, spec filter.Spec) (int64, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()
	return count(s.orderSnapshot(), viewOrder, spec), nil
}

func (r *orderRepository) Fetch(_ context.Context, spec filter.Spec, w paging.Window) ([]model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(window(s.orderSnapshot(), viewOrder, spec, w)), nil
}

func (s *Storage) orderSnapshot() []*model.Order {
	out := make([]*model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out
}

func cloneOrders(in []*model.Order) []model.Order {
	out := make([]model.Order, 0, len(in))
	for _, o := range in {
		out = append(out, *o.Clone())
	}
	return out
}
