package paging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/filter"
)

type recordingSource struct {
	total    int64
	items    []int
	countErr error
	fetchErr error
	window   Window
	spec     filter.Spec
}

func (s *recordingSource) Count(_ context.Context, spec filter.Spec) (int64, error) {
	return s.total, s.countErr
}

func (s *recordingSource) Fetch(_ context.Context, spec filter.Spec, w Window) ([]int, error) {
	s.window = w
	s.spec = spec
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	end := min(w.Offset+w.Limit, len(s.items))
	if w.Offset >= end {
		return nil, nil
	}
	return s.items[w.Offset:end], nil
}

var sortable = map[string]string{"createdAt": "created_at", "rating": "rating", "id": "id"}

func TestExecuteDefaultsToNewestFirst(t *testing.T) {
	src := &recordingSource{total: 15, items: make([]int, 15)}
	exec := NewExecutor[int](src, sortable, Limits{DefaultSize: 10, MaxSize: 50})

	spec := filter.Build([]filter.Clause{filter.NotDeleted()})
	page, err := exec.Execute(context.Background(), spec, Request{Page: 0})
	require.NoError(t, err)

	assert.Equal(t, int64(15), page.TotalElements)
	assert.Len(t, page.Content, 10)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 2, page.TotalPages())
	assert.Equal(t, []OrderBy{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}}, src.window.OrderBy)
	assert.Equal(t, spec, src.spec)
}

func TestExecuteLastPage(t *testing.T) {
	src := &recordingSource{total: 15, items: make([]int, 15)}
	exec := NewExecutor[int](src, sortable, DefaultLimits)

	page, err := exec.Execute(context.Background(), filter.Spec{}, Request{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, src.window.Offset)
	assert.Len(t, page.Content, 5)

	page, err = exec.Execute(context.Background(), filter.Spec{}, Request{Page: 5, Size: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(15), page.TotalElements)
}

func TestExecuteResolvesSortThroughAllowList(t *testing.T) {
	src := &recordingSource{}
	exec := NewExecutor[int](src, sortable, DefaultLimits)

	_, err := exec.Execute(context.Background(), filter.Spec{}, Request{Size: 5, Sort: &Sort{Field: "rating", Direction: Asc}})
	require.NoError(t, err)
	assert.Equal(t, []OrderBy{{Column: "rating"}, {Column: "id"}}, src.window.OrderBy)

	_, err = exec.Execute(context.Background(), filter.Spec{}, Request{Size: 5, Sort: &Sort{Field: "id", Direction: Desc}})
	require.NoError(t, err)
	assert.Equal(t, []OrderBy{{Column: "id", Desc: true}}, src.window.OrderBy)
}

func TestExecuteValidation(t *testing.T) {
	exec := NewExecutor[int](&recordingSource{}, sortable, Limits{DefaultSize: 10, MaxSize: 20})

	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"negative page", Request{Page: -1}, domainErrors.ErrInvalidPage},
		{"negative size", Request{Size: -3}, domainErrors.ErrInvalidPageSize},
		{"size above max", Request{Size: 21}, domainErrors.ErrInvalidPageSize},
		{"unknown sort", Request{Sort: &Sort{Field: "password"}}, domainErrors.ErrValidation},
		{"unknown direction", Request{Sort: &Sort{Field: "rating", Direction: "sideways"}}, domainErrors.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := exec.Execute(context.Background(), filter.Spec{}, tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, domainErrors.ErrValidation)
		})
	}
}

func TestExecutePropagatesSourceErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewExecutor[int](&recordingSource{countErr: boom}, sortable, DefaultLimits).
		Execute(context.Background(), filter.Spec{}, Request{})
	assert.ErrorIs(t, err, boom)

	_, err = NewExecutor[int](&recordingSource{fetchErr: boom}, sortable, DefaultLimits).
		Execute(context.Background(), filter.Spec{}, Request{})
	assert.ErrorIs(t, err, boom)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)

	_, err = ParseDirection("up")
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}

func TestNewExecutorNormalizesLimits(t *testing.T) {
	exec := NewExecutor[int](&recordingSource{}, sortable, Limits{DefaultSize: 500, MaxSize: 0})
	assert.Equal(t, DefaultLimits.MaxSize, exec.limits.MaxSize)
	assert.Equal(t, DefaultLimits.DefaultSize, exec.limits.DefaultSize)
}
