package facet

import (
	"errors"
	"testing"

	"github.com/matst80/slask-layer/pkg/config"
	"github.com/matst80/slask-layer/pkg/search"
	"github.com/matst80/slask-layer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCategory(t *testing.T) {
	q := search.NewQuery("")
	f := NewFactory(q, DefaultOptions())

	filter, err := f.Build(types.CategoryFilter, nil)
	require.NoError(t, err)
	assert.Equal(t, "category_filter", filter.Name)
	assert.Nil(t, filter.Attribute)
	assert.Equal(t, 0, filter.ItemsCount())

	c, ok := q.Facet("category_filter")
	require.True(t, ok)
	assert.Same(t, c, filter.Condition())
	assert.Equal(t, "category_ids", c.Field)
	assert.Equal(t, search.TermsAggregation, c.Kind)
	assert.Equal(t, 1024, c.Size)
}

func TestFactoryConditions(t *testing.T) {
	q := search.NewQuery("")
	f := NewFactory(q, Options{CategoryField: "cats", OptionsLimit: 50, PriceStep: 25, DecimalStep: 0.5})

	price, err := f.Build(types.PriceFilter, &types.AttributeDescriptor{Code: "price"})
	require.NoError(t, err)
	assert.Equal(t, "price_filter", price.Name)
	assert.Equal(t, search.HistogramAggregation, price.Condition().Kind)
	assert.Equal(t, 25.0, price.Condition().Interval)

	weight, err := f.Build(types.DecimalFilter, &types.AttributeDescriptor{Code: "weight"})
	require.NoError(t, err)
	assert.Equal(t, 0.5, weight.Condition().Interval)

	stock, err := f.Build(types.BooleanFilter, &types.AttributeDescriptor{Code: "in_stock"})
	require.NoError(t, err)
	assert.Equal(t, 2, stock.Condition().Size)

	color, err := f.Build(types.GenericFilter, &types.AttributeDescriptor{Code: "color"})
	require.NoError(t, err)
	assert.Equal(t, 50, color.Condition().Size)
	assert.Equal(t, "color", color.Condition().Field)

	rating, err := f.Build(types.RatingFilter, &types.AttributeDescriptor{Code: "rating_filter"})
	require.NoError(t, err)
	ranges := rating.Condition().Ranges
	require.Len(t, ranges, 5)
	assert.Equal(t, "1", ranges[0].Key)
	assert.Equal(t, 20.0, *ranges[0].From)
	assert.Equal(t, "5", ranges[4].Key)
	assert.Equal(t, 100.0, *ranges[4].From)

	assert.Len(t, q.Facets(), 5)
}

func TestFactoryMissingAttribute(t *testing.T) {
	f := NewFactory(search.NewQuery(""), DefaultOptions())
	_, err := f.Build(types.PriceFilter, nil)

	var cfgErr *types.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, types.ErrMissingAttribute)
}

func TestFactoryDuplicate(t *testing.T) {
	q := search.NewQuery("")
	f := NewFactory(q, DefaultOptions())
	_, err := f.Build(types.GenericFilter, &types.AttributeDescriptor{Code: "color"})
	require.NoError(t, err)

	_, err = f.Build(types.GenericFilter, &types.AttributeDescriptor{Code: "color"})
	assert.ErrorIs(t, err, types.ErrDuplicateFilter)
	assert.Len(t, q.Facets(), 1)
}

func TestFactoryCategoryCollision(t *testing.T) {
	f := NewFactory(search.NewQuery(""), DefaultOptions())
	_, err := f.Build(types.CategoryFilter, nil)
	require.NoError(t, err)

	_, err = f.Build(types.GenericFilter, &types.AttributeDescriptor{Code: "category"})
	assert.ErrorIs(t, err, types.ErrDuplicateFilter)
}

func TestFactoryAfterExecution(t *testing.T) {
	q := search.NewQuery("")
	q.Seal()
	_, err := NewFactory(q, DefaultOptions()).Build(types.GenericFilter, &types.AttributeDescriptor{Code: "color"})
	assert.ErrorIs(t, err, types.ErrQueryExecuted)
}

func TestFactoryUnknownType(t *testing.T) {
	_, err := NewFactory(search.NewQuery(""), DefaultOptions()).Build(types.FilterType(42), &types.AttributeDescriptor{Code: "color"})
	assert.ErrorIs(t, err, types.ErrUnknownFilter)
}

func TestOptionsFromStore(t *testing.T) {
	store := config.NewMapStore(map[string]string{
		CategoryFieldPath: "category_path",
		OptionsLimitPath:  "20",
		PriceStepPath:     "not a number",
		DecimalStepPath:   "2.5",
	})
	opts := OptionsFromStore(store)
	assert.Equal(t, "category_path", opts.CategoryField)
	assert.Equal(t, 20, opts.OptionsLimit)
	assert.Equal(t, 10.0, opts.PriceStep)
	assert.Equal(t, 2.5, opts.DecimalStep)

	assert.Equal(t, DefaultOptions(), OptionsFromStore(nil))
}
