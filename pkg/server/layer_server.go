package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/matst80/slask-layer/pkg/catalog"
	"github.com/matst80/slask-layer/pkg/common"
	"github.com/matst80/slask-layer/pkg/common/jsoncompat"
	"github.com/matst80/slask-layer/pkg/config"
	"github.com/matst80/slask-layer/pkg/facet"
	"github.com/matst80/slask-layer/pkg/session"
	"github.com/matst80/slask-layer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var layerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "slasklayer_requests_total",
	Help: "The total number of layer requests by outcome",
}, []string{"outcome"})

type LayerServer struct {
	Pipeline   *facet.Pipeline
	States     session.StateStore
	Attributes catalog.Provider
	Gate       *config.Gate
}

func (ws *LayerServer) Layer(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	req, err := session.FromRequest(r)
	if err != nil {
		layerRequests.WithLabelValues("bad_request").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	state, err := session.Resolve(r.Context(), ws.States, sessionId, req)
	if err != nil {
		log.Printf("session state unavailable for %s: %v", sessionId, err)
		state = req.State()
	}

	panel, err := ws.Pipeline.Build(r.Context(), req.ToFacetRequest(state))
	if err != nil {
		layerRequests.WithLabelValues(outcome(err)).Inc()
		return err
	}
	res, err := NewLayerResponse(r.Context(), panel)
	if err != nil {
		layerRequests.WithLabelValues(outcome(err)).Inc()
		if errors.As(err, new(*types.QueryError)) {
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		return err
	}
	layerRequests.WithLabelValues("ok").Inc()
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(res)
}

func outcome(err error) string {
	switch {
	case errors.As(err, new(*types.ConfigurationError)):
		return "configuration_error"
	case errors.As(err, new(*types.QueryError)):
		return "backend_error"
	default:
		return "error"
	}
}

type resolvedAttribute struct {
	types.AttributeDescriptor
	Filter string           `json:"filter"`
	Type   types.FilterType `json:"type"`
}

func (ws *LayerServer) AttributeList(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	attrs, err := ws.Attributes.Filterable(r.Context())
	if err != nil {
		return err
	}
	res := make([]resolvedAttribute, 0, len(attrs))
	for _, attr := range attrs {
		res = append(res, resolvedAttribute{
			AttributeDescriptor: attr,
			Filter:              attr.FilterName(),
			Type:                facet.Resolve(attr),
		})
	}
	w.WriteHeader(http.StatusOK)
	return enc.Encode(res)
}

func (ws *LayerServer) Handle() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.HandleFunc("/api/layer", common.JsonHandler(ws.Layer))
	srv.HandleFunc("GET /api/attributes", common.JsonHandler(ws.AttributeList))
	srv.HandleFunc("GET /api/engine", common.JsonHandler(func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		w.WriteHeader(http.StatusOK)
		return enc.Encode(map[string]bool{"active": ws.Gate.IsActive()})
	}))
	srv.Handle("/metrics", promhttp.Handler())
	return srv
}
