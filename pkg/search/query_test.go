package search

import (
	"errors"
	"testing"

	"github.com/matst80/slask-layer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFacetKeepsOrder(t *testing.T) {
	q := NewQuery("shoes")
	require.NoError(t, q.AddFacet(&FacetCondition{Name: "category_filter", Kind: TermsAggregation}))
	require.NoError(t, q.AddFacet(&FacetCondition{Name: "color_filter", Kind: TermsAggregation}))

	facets := q.Facets()
	require.Len(t, facets, 2)
	assert.Equal(t, "category_filter", facets[0].Name)
	assert.Equal(t, "color_filter", facets[1].Name)

	c, ok := q.Facet("color_filter")
	assert.True(t, ok)
	assert.Same(t, facets[1], c)
}

func TestAddFacetDuplicateName(t *testing.T) {
	q := NewQuery("")
	require.NoError(t, q.AddFacet(&FacetCondition{Name: "color_filter"}))
	err := q.AddFacet(&FacetCondition{Name: "color_filter"})

	var cfgErr *types.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "color_filter", cfgErr.Filter)
	assert.ErrorIs(t, err, types.ErrDuplicateFilter)
	assert.Len(t, q.Facets(), 1)
}

func TestSealedQueryRejectsFacets(t *testing.T) {
	q := NewQuery("")
	q.Seal()
	err := q.AddFacet(&FacetCondition{Name: "color_filter"})
	assert.ErrorIs(t, err, types.ErrQueryExecuted)
	assert.ErrorIs(t, q.AddClause(Clause{Field: "color"}), types.ErrQueryExecuted)
	assert.Empty(t, q.Facets())
}

func TestItemsCountSkipsEmptyBuckets(t *testing.T) {
	c := &FacetCondition{Name: "color_filter"}
	assert.Equal(t, 0, c.ItemsCount())
	c.setBuckets([]Bucket{{Key: "red", Count: 3}, {Key: "blue", Count: 0}, {Key: "green", Count: 1}})
	assert.Equal(t, 2, c.ItemsCount())
	assert.True(t, c.IsLoaded())
}
