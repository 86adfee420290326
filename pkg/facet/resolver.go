package facet

import "github.com/matst80/slask-layer/pkg/types"

type rule struct {
	name       string
	matches    func(attr *types.AttributeDescriptor) bool
	filterType types.FilterType
}

// rules are evaluated in order, the first match wins. Code checks come
// before the source model and backend type checks.
var rules = []rule{
	{
		name:       "price code",
		matches:    func(attr *types.AttributeDescriptor) bool { return attr.Code == "price" },
		filterType: types.PriceFilter,
	},
	{
		name:       "rating code",
		matches:    func(attr *types.AttributeDescriptor) bool { return attr.Code == "rating_filter" },
		filterType: types.RatingFilter,
	},
	{
		name:       "boolean source",
		matches:    func(attr *types.AttributeDescriptor) bool { return attr.SourceModel == types.BooleanSourceModel },
		filterType: types.BooleanFilter,
	},
	{
		name:       "decimal backend",
		matches:    func(attr *types.AttributeDescriptor) bool { return attr.BackendType == "decimal" },
		filterType: types.DecimalFilter,
	},
}

// Resolve picks the filter type for an attribute. It never fails; anything
// not matched by a rule is a generic attribute filter.
func Resolve(attr types.AttributeDescriptor) types.FilterType {
	for _, r := range rules {
		if r.matches(&attr) {
			return r.filterType
		}
	}
	return types.GenericFilter
}
