package facet

import (
	"context"
	"fmt"

	"github.com/matst80/slask-layer/pkg/catalog"
	"github.com/matst80/slask-layer/pkg/config"
	"github.com/matst80/slask-layer/pkg/search"
	"github.com/matst80/slask-layer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	layersBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasklayer_layers_built_total",
		Help: "The total number of faceted layers built",
	})
	fallbackLayers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasklayer_fallback_layers_total",
		Help: "The total number of requests served by the fallback panel",
	})
)

type BackendFactory interface {
	Backend(cfg config.EngineConfig) (search.Backend, error)
}

type FallbackFunc func(ctx context.Context, req Request) (Panel, error)

type Request struct {
	Query    string            `json:"q"`
	Page     int               `json:"page"`
	PageSize int               `json:"size"`
	State    *types.LayerState `json:"state"`
}

// Pipeline builds the panel for a request. When the search engine is not
// active the fallback panel is used.
type Pipeline struct {
	Config     config.Store
	Gate       *config.Gate
	Attributes catalog.Provider
	Backends   BackendFactory
	Templates  *TemplateRegistry
	Fallback   FallbackFunc
}

func (p *Pipeline) gate() *config.Gate {
	if p.Gate == nil {
		p.Gate = config.NewGate(p.Config)
	}
	return p.Gate
}

func (p *Pipeline) Build(ctx context.Context, req Request) (Panel, error) {
	if !p.gate().IsActive() {
		fallbackLayers.Inc()
		if p.Fallback == nil {
			return NewStaticPanel(req.State), nil
		}
		return p.Fallback(ctx, req)
	}

	cfg := config.EngineConfigFromStore(p.Config)
	backend, err := p.Backends.Backend(cfg)
	if err != nil {
		return nil, fmt.Errorf("search backend: %w", err)
	}
	attrs, err := p.Attributes.Filterable(ctx)
	if err != nil {
		return nil, fmt.Errorf("filterable attributes: %w", err)
	}

	query := search.NewQuery(req.Query)
	query.SearchOnOptions = cfg.SearchOnOptions
	query.Page = req.Page
	if req.PageSize > 0 {
		query.PageSize = req.PageSize
	}

	layer := NewLayer(backend, query, req.State, OptionsFromStore(p.Config))
	if err := layer.Prepare(attrs); err != nil {
		return nil, err
	}
	if err := layer.Apply(); err != nil {
		return nil, err
	}
	p.Templates.ApplyAll(layer.Filters())
	layersBuilt.Inc()
	return layer, nil
}
