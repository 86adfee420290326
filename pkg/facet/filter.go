package facet

import (
	"github.com/matst80/slask-layer/pkg/search"
	"github.com/matst80/slask-layer/pkg/types"
)

// Filter is one facet block of a layer. Its items come from the condition
// attached to the search query.
type Filter struct {
	Name      string
	Type      types.FilterType
	Attribute *types.AttributeDescriptor
	Template  string
	condition *search.FacetCondition
}

// NewStaticFilter builds a filter with fixed items, not attached to any
// query.
func NewStaticFilter(name string, t types.FilterType, attr *types.AttributeDescriptor, items ...search.Bucket) *Filter {
	return &Filter{
		Name:      name,
		Type:      t,
		Attribute: attr,
		condition: search.LoadedCondition(name, items),
	}
}

func (f *Filter) Condition() *search.FacetCondition {
	return f.condition
}

func (f *Filter) ItemsCount() int {
	if f.condition == nil {
		return 0
	}
	return f.condition.ItemsCount()
}

func (f *Filter) Items() []search.Bucket {
	if f.condition == nil {
		return nil
	}
	return f.condition.Buckets()
}

func (f *Filter) Label() string {
	if f.Attribute != nil && f.Attribute.Label != "" {
		return f.Attribute.Label
	}
	if f.Attribute != nil {
		return f.Attribute.Code
	}
	return f.Type.String()
}
