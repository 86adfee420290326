package facet

import (
	"context"

	"github.com/matst80/slask-layer/pkg/types"
)

// Panel is what the renderer needs from a navigation block, faceted or
// not.
type Panel interface {
	State() *types.LayerState
	Filters() []*Filter
	CanShowOptions() bool
	CanShowBlock(ctx context.Context) (bool, error)
}

// StaticPanel is a non faceted panel with fixed filters. It never talks to
// a search backend.
type StaticPanel struct {
	state   *types.LayerState
	filters []*Filter
}

func NewStaticPanel(state *types.LayerState, filters ...*Filter) *StaticPanel {
	return &StaticPanel{
		state:   state,
		filters: filters,
	}
}

func (p *StaticPanel) State() *types.LayerState {
	return p.state
}

func (p *StaticPanel) Filters() []*Filter {
	return p.filters
}

func (p *StaticPanel) CanShowOptions() bool {
	return CanShowOptions(p.filters)
}

func (p *StaticPanel) CanShowBlock(ctx context.Context) (bool, error) {
	return CanShowBlock(ctx, nil, p.state, p.filters)
}
