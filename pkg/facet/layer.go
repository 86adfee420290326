package facet

import (
	"context"
	"log"
	"slices"

	"github.com/matst80/slask-layer/pkg/search"
	"github.com/matst80/slask-layer/pkg/types"
)

const (
	StateChildName    = "layer_state"
	categorySelection = "category"
)

// Layer is the faceted navigation block of one request. It owns the query,
// the lazily executed result set and the filters built for it.
type Layer struct {
	state    *types.LayerState
	results  *search.ResultSet
	factory  *Factory
	category *Filter
	filters  []*Filter
	children map[string]any
	names    []string
}

func NewLayer(backend search.Backend, query *search.Query, state *types.LayerState, opts Options) *Layer {
	if state == nil {
		state = types.NewLayerState()
	}
	l := &Layer{
		state:    state,
		results:  search.NewResultSet(backend, query),
		factory:  NewFactory(query, opts),
		children: make(map[string]any),
	}
	l.setChild(StateChildName, state)
	return l
}

func (l *Layer) setChild(name string, child any) {
	if _, found := l.children[name]; !found {
		l.names = append(l.names, name)
	}
	l.children[name] = child
}

// Prepare builds the category filter and one filter per attribute, in
// attribute order.
func (l *Layer) Prepare(attrs []types.AttributeDescriptor) error {
	category, err := l.factory.Build(types.CategoryFilter, nil)
	if err != nil {
		return err
	}
	l.category = category
	l.setChild(category.Name, category)

	for i := range attrs {
		attr := attrs[i]
		f, err := l.factory.Build(Resolve(attr), &attr)
		if err != nil {
			return err
		}
		l.filters = append(l.filters, f)
		l.setChild(f.Name, f)
	}
	return nil
}

// Apply turns the current selections into query filters. It must run
// after every facet is attached.
func (l *Layer) Apply() error {
	query := l.results.Query()
	for _, sel := range l.state.Selected {
		field := sel.Code
		if field == categorySelection {
			field = l.factory.Options().CategoryField
		}
		clause := search.Clause{Field: field}
		switch {
		case sel.IsRange():
			r := *sel.Range
			clause.Range = &r
		case len(sel.Values) > 0:
			clause.Values = slices.Clone(sel.Values)
		default:
			log.Printf("skipping empty selection for %s", sel.Code)
			continue
		}
		if err := query.AddClause(clause); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layer) State() *types.LayerState {
	return l.state
}

func (l *Layer) Results() *search.ResultSet {
	return l.results
}

func (l *Layer) Query() *search.Query {
	return l.results.Query()
}

func (l *Layer) Category() *Filter {
	return l.category
}

// Filters returns the category filter followed by the attribute filters.
func (l *Layer) Filters() []*Filter {
	result := make([]*Filter, 0, len(l.filters)+1)
	if l.category != nil {
		result = append(result, l.category)
	}
	return append(result, l.filters...)
}

func (l *Layer) Child(name string) (any, bool) {
	child, ok := l.children[name]
	return child, ok
}

func (l *Layer) ChildNames() []string {
	return slices.Clone(l.names)
}

func (l *Layer) Size(ctx context.Context) (int, error) {
	return l.results.Size(ctx)
}

func (l *Layer) CanShowOptions() bool {
	return CanShowOptions(l.Filters())
}

func (l *Layer) CanShowBlock(ctx context.Context) (bool, error) {
	return CanShowBlock(ctx, l.results, l.state, l.Filters())
}
