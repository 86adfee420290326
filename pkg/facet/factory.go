package facet

import (
	"fmt"
	"strconv"

	"github.com/matst80/slask-layer/pkg/config"
	"github.com/matst80/slask-layer/pkg/search"
	"github.com/matst80/slask-layer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/spf13/cast"
)

const (
	CategoryFieldPath = "catalog/layered_navigation/category_field"
	OptionsLimitPath  = "catalog/layered_navigation/options_limit"
	PriceStepPath     = "catalog/layered_navigation/price_range_step"
	DecimalStepPath   = "catalog/layered_navigation/decimal_range_step"

	ratingStars = 5
)

var facetsAttached = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "slasklayer_facets_attached_total",
	Help: "The total number of facet conditions attached to layer queries",
}, []string{"type"})

type Options struct {
	CategoryField string  `json:"categoryField"`
	OptionsLimit  int     `json:"optionsLimit"`
	PriceStep     float64 `json:"priceStep"`
	DecimalStep   float64 `json:"decimalStep"`
}

func DefaultOptions() Options {
	return Options{
		CategoryField: "category_ids",
		OptionsLimit:  1024,
		PriceStep:     10,
		DecimalStep:   1,
	}
}

// OptionsFromStore reads the facet options, keeping the default for every
// missing or invalid value.
func OptionsFromStore(store config.Store) Options {
	opts := DefaultOptions()
	if store == nil {
		return opts
	}
	if v := store.String(CategoryFieldPath); v != "" {
		opts.CategoryField = v
	}
	if v, err := cast.ToIntE(store.String(OptionsLimitPath)); err == nil && v > 0 {
		opts.OptionsLimit = v
	}
	if v, err := cast.ToFloat64E(store.String(PriceStepPath)); err == nil && v > 0 {
		opts.PriceStep = v
	}
	if v, err := cast.ToFloat64E(store.String(DecimalStepPath)); err == nil && v > 0 {
		opts.DecimalStep = v
	}
	return opts
}

type conditionBuilder func(attr *types.AttributeDescriptor, opts Options) *search.FacetCondition

var builders = map[types.FilterType]conditionBuilder{
	types.CategoryFilter: func(_ *types.AttributeDescriptor, opts Options) *search.FacetCondition {
		return &search.FacetCondition{
			Field:       opts.CategoryField,
			Kind:        search.TermsAggregation,
			Size:        opts.OptionsLimit,
			MinDocCount: 1,
		}
	},
	types.PriceFilter: func(attr *types.AttributeDescriptor, opts Options) *search.FacetCondition {
		return &search.FacetCondition{
			Field:       attr.Code,
			Kind:        search.HistogramAggregation,
			Interval:    opts.PriceStep,
			MinDocCount: 1,
		}
	},
	types.RatingFilter: func(attr *types.AttributeDescriptor, _ Options) *search.FacetCondition {
		return &search.FacetCondition{
			Field:  attr.Code,
			Kind:   search.RangeAggregation,
			Ranges: ratingRanges(),
		}
	},
	types.BooleanFilter: func(attr *types.AttributeDescriptor, _ Options) *search.FacetCondition {
		return &search.FacetCondition{
			Field:       attr.Code,
			Kind:        search.TermsAggregation,
			Size:        2,
			MinDocCount: 1,
		}
	},
	types.DecimalFilter: func(attr *types.AttributeDescriptor, opts Options) *search.FacetCondition {
		return &search.FacetCondition{
			Field:       attr.Code,
			Kind:        search.HistogramAggregation,
			Interval:    opts.DecimalStep,
			MinDocCount: 1,
		}
	},
	types.GenericFilter: func(attr *types.AttributeDescriptor, opts Options) *search.FacetCondition {
		return &search.FacetCondition{
			Field:       attr.Code,
			Kind:        search.TermsAggregation,
			Size:        opts.OptionsLimit,
			MinDocCount: 1,
		}
	},
}

// ratingRanges gives one bucket per star, ratings are stored as percent.
func ratingRanges() []search.AggregationRange {
	ranges := make([]search.AggregationRange, 0, ratingStars)
	for stars := 1; stars <= ratingStars; stars++ {
		from := float64(stars * 20)
		ranges = append(ranges, search.AggregationRange{
			Key:  strconv.Itoa(stars),
			From: &from,
		})
	}
	return ranges
}

// Factory builds the filters of one layer and attaches their conditions
// to the layer query.
type Factory struct {
	query *search.Query
	opts  Options
}

func NewFactory(query *search.Query, opts Options) *Factory {
	return &Factory{
		query: query,
		opts:  opts,
	}
}

func (f *Factory) Options() Options {
	return f.opts
}

func (f *Factory) Build(t types.FilterType, attr *types.AttributeDescriptor) (*Filter, error) {
	build, ok := builders[t]
	if !ok {
		return nil, &types.ConfigurationError{Filter: t.String(), Err: fmt.Errorf("%w %d", types.ErrUnknownFilter, t)}
	}
	name := types.CategoryFilterName
	if t == types.CategoryFilter {
		attr = nil
	} else {
		if attr == nil {
			return nil, &types.ConfigurationError{Filter: t.String(), Err: types.ErrMissingAttribute}
		}
		name = attr.FilterName()
	}

	condition := build(attr, f.opts)
	condition.Name = name
	if err := f.query.AddFacet(condition); err != nil {
		return nil, err
	}
	facetsAttached.WithLabelValues(t.String()).Inc()

	return &Filter{
		Name:      name,
		Type:      t,
		Attribute: attr,
		condition: condition,
	}, nil
}
