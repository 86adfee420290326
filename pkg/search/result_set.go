package search

import (
	"context"
	"log"

	"github.com/matst80/slask-layer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sizeLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasklayer_size_loads_total",
		Help: "The total number of executed layer queries",
	})
	backendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasklayer_backend_errors_total",
		Help: "The total number of failed layer queries",
	})
)

// ResultSet executes its query lazily, at most once. The outcome, size or
// error, is kept for every later call.
type ResultSet struct {
	backend Backend
	query   *Query
	loaded  bool
	size    int
	err     error
}

func NewResultSet(backend Backend, query *Query) *ResultSet {
	return &ResultSet{
		backend: backend,
		query:   query,
	}
}

func (r *ResultSet) Query() *Query {
	return r.query
}

func (r *ResultSet) IsLoaded() bool {
	return r.loaded
}

func (r *ResultSet) Size(ctx context.Context) (int, error) {
	if !r.loaded {
		r.load(ctx)
	}
	return r.size, r.err
}

func (r *ResultSet) load(ctx context.Context) {
	r.loaded = true
	r.query.Seal()
	sizeLoads.Inc()

	res, err := r.backend.Execute(ctx, r.query)
	if err != nil {
		backendErrors.Inc()
		log.Printf("layer query failed: %v", err)
		r.err = &types.QueryError{Op: "execute", Err: err}
		return
	}
	if res == nil {
		res = &Response{}
	}
	r.size = res.Total
	for _, facet := range r.query.Facets() {
		facet.setBuckets(res.Aggregations[facet.Name])
	}
}
