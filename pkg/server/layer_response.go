package server

import (
	"context"

	"github.com/matst80/slask-layer/pkg/facet"
	"github.com/matst80/slask-layer/pkg/search"
	"github.com/matst80/slask-layer/pkg/types"
)

type FilterResponse struct {
	Name     string           `json:"name"`
	Type     types.FilterType `json:"type"`
	Label    string           `json:"label"`
	Template string           `json:"template,omitempty"`
	Items    []search.Bucket  `json:"items"`
}

type LayerResponse struct {
	Visible     bool              `json:"visible"`
	ShowOptions bool              `json:"showOptions"`
	TotalHits   int               `json:"totalHits"`
	Filters     []FilterResponse  `json:"filters"`
	State       *types.LayerState `json:"state"`
}

type sizer interface {
	Size(ctx context.Context) (int, error)
}

// NewLayerResponse asks the panel for its visibility first, so the search
// has run before the filter items are read.
func NewLayerResponse(ctx context.Context, panel facet.Panel) (*LayerResponse, error) {
	visible, err := panel.CanShowBlock(ctx)
	if err != nil {
		return nil, err
	}
	res := &LayerResponse{
		Visible:     visible,
		ShowOptions: panel.CanShowOptions(),
		State:       panel.State(),
	}
	if s, ok := panel.(sizer); ok {
		if res.TotalHits, err = s.Size(ctx); err != nil {
			return nil, err
		}
	}
	if !visible {
		res.Filters = []FilterResponse{}
		return res, nil
	}
	res.Filters = make([]FilterResponse, 0, len(panel.Filters()))
	for _, f := range panel.Filters() {
		if f.ItemsCount() == 0 {
			continue
		}
		res.Filters = append(res.Filters, FilterResponse{
			Name:     f.Name,
			Type:     f.Type,
			Label:    f.Label(),
			Template: f.Template,
			Items:    f.Items(),
		})
	}
	return res, nil
}
