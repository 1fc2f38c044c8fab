// Package paging runs filtered, sorted and windowed queries against a Source.
package paging

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/filter"
)

// Column names used for the default ordering of every resource.
const (
	CreatedAtColumn = "created_at"
	IDColumn        = "id"
)

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection accepts asc/desc in any case. Empty input yields Asc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	default:
		return "", &domainErrors.UnknownSortFieldError{Field: s}
	}
}

// Sort names an API-level sort field.
type Sort struct {
	Field     string
	Direction Direction
}

// Request holds zero-based page coordinates. A zero Size selects the default size.
type Request struct {
	Page int
	Size int
	Sort *Sort
}

// Page is one window of results plus the full filtered count.
type Page[T any] struct {
	Content       []T
	TotalElements int64
	Page          int
	Size          int
}

// TotalPages returns the number of pages of Size needed for TotalElements.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// OrderBy is a resolved storage column ordering.
type OrderBy struct {
	Column string
	Desc   bool
}

// Window selects a slice of the ordered, filtered collection.
type Window struct {
	Offset  int
	Limit   int
	OrderBy []OrderBy
}

// Source is a filtered collection that can be counted and windowed.
type Source[T any] interface {
	Count(ctx context.Context, spec filter.Spec) (int64, error)
	Fetch(ctx context.Context, spec filter.Spec, window Window) ([]T, error)
}

// Limits bound page sizes.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits are used when no configuration is supplied.
var DefaultLimits = Limits{DefaultSize: 10, MaxSize: 100}

// Executor validates page requests for one resource and runs them.
type Executor[T any] struct {
	source   Source[T]
	sortable map[string]string
	limits   Limits
}

// NewExecutor constructs Executor. sortable maps API sort names to storage columns.
func NewExecutor[T any](source Source[T], sortable map[string]string, limits Limits) *Executor[T] {
	if limits.MaxSize <= 0 {
		limits.MaxSize = DefaultLimits.MaxSize
	}
	if limits.DefaultSize <= 0 || limits.DefaultSize > limits.MaxSize {
		limits.DefaultSize = min(DefaultLimits.DefaultSize, limits.MaxSize)
	}
	return &Executor[T]{source: source, sortable: sortable, limits: limits}
}

// Execute counts and fetches the requested page concurrently.
func (e *Executor[T]) Execute(ctx context.Context, spec filter.Spec, req Request) (Page[T], error) {
	window, size, err := e.window(req)
	if err != nil {
		return Page[T]{}, err
	}

	var (
		total   int64
		content []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := e.source.Count(gctx, spec)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		items, err := e.source.Fetch(gctx, spec, window)
		if err != nil {
			return fmt.Errorf("fetch page: %w", err)
		}
		content = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return Page[T]{}, err
	}

	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, TotalElements: total, Page: req.Page, Size: size}, nil
}

func (e *Executor[T]) window(req Request) (Window, int, error) {
	if req.Page < 0 {
		return Window{}, 0, domainErrors.ErrInvalidPage
	}
	size := req.Size
	if size == 0 {
		size = e.limits.DefaultSize
	}
	if size < 0 || size > e.limits.MaxSize {
		return Window{}, 0, domainErrors.ErrInvalidPageSize
	}

	orderBy := []OrderBy{{Column: CreatedAtColumn, Desc: true}, {Column: IDColumn, Desc: true}}
	if req.Sort != nil {
		column, ok := e.sortable[req.Sort.Field]
		if !ok {
			return Window{}, 0, &domainErrors.UnknownSortFieldError{Field: req.Sort.Field}
		}
		desc := false
		switch req.Sort.Direction {
		case "", Asc:
		case Desc:
			desc = true
		default:
			return Window{}, 0, &domainErrors.UnknownSortFieldError{Field: string(req.Sort.Direction)}
		}
		orderBy = []OrderBy{{Column: column, Desc: desc}}
		if column != IDColumn {
			orderBy = append(orderBy, OrderBy{Column: IDColumn, Desc: desc})
		}
	}

	return Window{Offset: req.Page * size, Limit: size, OrderBy: orderBy}, size, nil
}
