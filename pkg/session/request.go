package session

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/slask-layer/pkg/common/jsoncompat"
	"github.com/matst80/slask-layer/pkg/facet"
	"github.com/matst80/slask-layer/pkg/types"
	"github.com/spf13/cast"
)

type LayerRequest struct {
	Query    string `json:"q" schema:"q"`
	Page     int    `json:"page" schema:"page"`
	PageSize int    `json:"size" schema:"size,default:40"`
	Clear    bool   `json:"clear" schema:"clear"`

	Selected []types.Selection `json:"filters" schema:"-"`
}

// HasSelection reports whether the request sets the navigation state
// itself instead of continuing the stored one.
func (r *LayerRequest) HasSelection() bool {
	return r.Clear || len(r.Selected) > 0
}

func (r *LayerRequest) State() *types.LayerState {
	return types.NewLayerState(r.Selected...)
}

func (r *LayerRequest) ToFacetRequest(state *types.LayerState) facet.Request {
	return facet.Request{
		Query:    r.Query,
		Page:     r.Page,
		PageSize: r.PageSize,
		State:    state,
	}
}

func FromRequest(r *http.Request) (*LayerRequest, error) {
	result := &LayerRequest{}
	if r.Method == http.MethodGet {
		if err := fromQuery(r.URL.Query(), result); err != nil {
			return nil, err
		}
		return result, nil
	}
	if err := jsoncompat.NewDecoder(r.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("decode layer request: %w", err)
	}
	if result.PageSize <= 0 {
		result.PageSize = 40
	}
	return result, nil
}

func fromQuery(query url.Values, result *LayerRequest) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(result, query); err != nil {
		return fmt.Errorf("decode layer query: %w", err)
	}
	result.Selected = append(result.Selected, decodeSelections(query)...)
	return nil
}

// decodeSelections reads str=<code>:<v1>||<v2> and rng=<code>:<min>-<max>
// parameters. Malformed entries are skipped.
func decodeSelections(query url.Values) []types.Selection {
	selected := make([]types.Selection, 0, len(query["str"])+len(query["rng"]))
	for _, v := range query["str"] {
		code, values, found := strings.Cut(v, ":")
		if !found || code == "" || values == "" {
			continue
		}
		selected = append(selected, types.Selection{
			Code:   code,
			Values: strings.Split(values, "||"),
		})
	}
	for _, v := range query["rng"] {
		code, bounds, found := strings.Cut(v, ":")
		if !found || code == "" {
			continue
		}
		r, ok := parseRange(bounds)
		if !ok {
			continue
		}
		selected = append(selected, types.Selection{
			Code:  code,
			Range: r,
		})
	}
	return selected
}

func parseRange(bounds string) (*types.Range, bool) {
	if len(bounds) < 3 {
		return nil, false
	}
	// the first character may be the sign of the lower bound
	idx := strings.Index(bounds[1:], "-")
	if idx == -1 {
		return nil, false
	}
	idx++
	min, err := cast.ToFloat64E(bounds[:idx])
	if err != nil {
		return nil, false
	}
	max, err := cast.ToFloat64E(bounds[idx+1:])
	if err != nil {
		return nil, false
	}
	if min > max {
		return nil, false
	}
	return &types.Range{Min: min, Max: max}, true
}
