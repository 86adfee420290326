package search

import (
	"context"
	"errors"
	"testing"

	"github.com/matst80/slask-layer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBackend struct {
	calls    int
	response *Response
	err      error
}

func (b *countingBackend) Execute(ctx context.Context, q *Query) (*Response, error) {
	b.calls++
	return b.response, b.err
}

func TestSizeLoadsOnce(t *testing.T) {
	backend := &countingBackend{response: &Response{
		Total: 42,
		Aggregations: map[string][]Bucket{
			"color_filter": {{Key: "red", Count: 40}, {Key: "blue", Count: 2}},
		},
	}}
	q := NewQuery("")
	color := &FacetCondition{Name: "color_filter", Kind: TermsAggregation}
	size := &FacetCondition{Name: "size_filter", Kind: TermsAggregation}
	require.NoError(t, q.AddFacet(color))
	require.NoError(t, q.AddFacet(size))

	rs := NewResultSet(backend, q)
	assert.False(t, rs.IsLoaded())

	for range 3 {
		total, err := rs.Size(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, total)
	}
	assert.Equal(t, 1, backend.calls)
	assert.True(t, rs.IsLoaded())
	assert.True(t, q.Sealed())
	assert.Equal(t, 2, color.ItemsCount())
	assert.Equal(t, 0, size.ItemsCount())
	assert.True(t, size.IsLoaded())
}

func TestSizeErrorIsKept(t *testing.T) {
	backend := &countingBackend{err: errors.New("connection refused")}
	rs := NewResultSet(backend, NewQuery(""))

	_, err := rs.Size(context.Background())
	var queryErr *types.QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, "execute", queryErr.Op)

	_, again := rs.Size(context.Background())
	assert.Same(t, err, again)
	assert.Equal(t, 1, backend.calls)
	assert.True(t, rs.IsLoaded())
}

func TestSizeEmptyResponse(t *testing.T) {
	backend := &countingBackend{}
	q := NewQuery("")
	color := &FacetCondition{Name: "color_filter", Kind: TermsAggregation}
	require.NoError(t, q.AddFacet(color))

	total, err := NewResultSet(backend, q).Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.True(t, color.IsLoaded())
	assert.Equal(t, 0, color.ItemsCount())
}

func TestBackendFunc(t *testing.T) {
	var seen *Query
	backend := BackendFunc(func(ctx context.Context, q *Query) (*Response, error) {
		seen = q
		return &Response{Total: 1}, nil
	})
	q := NewQuery("x")
	total, err := NewResultSet(backend, q).Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Same(t, q, seen)
}
