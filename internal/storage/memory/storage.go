// Package memory keeps every repository in process memory. It evaluates
// filter specs with filter.Match and backs tests and storage-less runs.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
	"github.com/polkiloo/commerce-admin/internal/domain/repository"
)

// Storage acts as repository facade backed by process memory.
type Storage struct {
	mu     sync.RWMutex
	logger *slog.Logger
	now    func() time.Time

	orders   map[int64]*model.Order
	users    map[int64]*model.User
	products map[int64]*model.Product
	reviews  map[int64]*model.Review

	nextOrderID int64
	nextItemID  int64
	nextID      int64
}

type orderRepository struct {
	storage *Storage
}

type customerDirectory struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type userRepository struct {
	storage *Storage
}

type reviewRepository struct {
	storage *Storage
}

// New creates empty storage.
func New(logger *slog.Logger) *Storage {
	return &Storage{
		logger:   logger,
		now:      time.Now,
		orders:   make(map[int64]*model.Order),
		users:    make(map[int64]*model.User),
		products: make(map[int64]*model.Product),
		reviews:  make(map[int64]*model.Review),
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Customers() repository.CustomerDirectory {
	return &customerDirectory{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Reviews() repository.ReviewRepository {
	return &reviewRepository{storage: s}
}

// HealthCheck always succeeds.
func (s *Storage) HealthCheck(context.Context) error {
	return nil
}

// Close is a no-op kept for parity with the database storage.
func (s *Storage) Close() {}

// AddUser stores a user, assigning an id and creation time when unset.
func (s *Storage) AddUser(u model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.allocID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	u.SegmentIDs = append([]int64(nil), u.SegmentIDs...)
	s.users[u.ID] = &u
	return u
}

// AddProduct stores a product, assigning an id and creation time when unset.
func (s *Storage) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.allocID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.products[p.ID] = &p
	return p
}

// AddReview stores a review, assigning an id and creation time when unset.
func (s *Storage) AddReview(r model.Review) model.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.allocID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	if u, ok := s.users[r.CustomerID]; ok {
		r.CustomerFirstName = u.FirstName
		r.CustomerLastName = u.LastName
	}
	s.reviews[r.ID] = &r
	return r
}

func (s *Storage) allocID() int64 {
	s.nextID++
	return s.nextID
}

// window filters, orders and slices records. Callers hold the read lock.
func window[T any](records []T, view func(T) filter.Record, spec filter.Spec, w paging.Window) []T {
	matched := make([]T, 0, len(records))
	for _, r := range records {
		if filter.Match(spec, view(r)) {
			matched = append(matched, r)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := view(matched[i]), view(matched[j])
		for _, ob := range w.OrderBy {
			av, _ := a.Field(ob.Column)
			bv, _ := b.Field(ob.Column)
			cmp := compareNullable(av, bv)
			if cmp == 0 {
				continue
			}
			if ob.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	if w.Limit <= 0 {
		return matched
	}
	if w.Offset >= len(matched) {
		return []T{}
	}
	end := min(w.Offset+w.Limit, len(matched))
	return matched[w.Offset:end]
}

func count[T any](records []T, view func(T) filter.Record, spec filter.Spec) int64 {
	var n int64
	for _, r := range records {
		if filter.Match(spec, view(r)) {
			n++
		}
	}
	return n
}

// compareNullable orders absent values first.
func compareNullable(a, b any) int {
	if cmp, ok := filter.Compare(a, b); ok {
		return cmp
	}
	aNil, bNil := isAbsent(a), isAbsent(b)
	switch {
	case aNil && !bNil:
		return -1
	case !aNil && bNil:
		return 1
	default:
		return 0
	}
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	if t, ok := v.(*time.Time); ok {
		return t == nil
	}
	return false
}
