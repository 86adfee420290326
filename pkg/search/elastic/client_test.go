package elastic

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matst80/slask-layer/pkg/config"
	"github.com/matst80/slask-layer/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elasticServer(t *testing.T, status int, body string, seen *string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			data, _ := io.ReadAll(r.Body)
			*seen = r.URL.Path + " " + string(data)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBackendExecute(t *testing.T) {
	var seen string
	srv := elasticServer(t, http.StatusOK, searchResult, &seen)

	pool := NewPool(DefaultFields)
	backend, err := pool.Backend(config.EngineConfig{Hosts: []string{srv.URL}, Index: "catalog_se"})
	require.NoError(t, err)

	q := composedQuery(t, "shoe")
	rs := search.NewResultSet(backend, q)
	total, err := rs.Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 128, total)

	category, _ := q.Facet("category_filter")
	assert.Equal(t, 2, category.ItemsCount())
	price, _ := q.Facet("price_filter")
	assert.Equal(t, 1, price.ItemsCount())

	assert.True(t, strings.HasPrefix(seen, "/catalog_se/_search"))
	assert.Contains(t, seen, `"aggs"`)
	assert.Contains(t, seen, `"shoe"`)
}

func TestBackendExecuteErrorResponse(t *testing.T) {
	srv := elasticServer(t, http.StatusBadRequest, `{"error":{"type":"parsing_exception"},"status":400}`, nil)

	backend, err := NewPool(DefaultFields).Backend(config.EngineConfig{Hosts: []string{srv.URL}, Index: "catalog"})
	require.NoError(t, err)

	_, err = backend.Execute(context.Background(), search.NewQuery(""))
	assert.Error(t, err)
}

func TestPoolReusesBackends(t *testing.T) {
	pool := NewPool(DefaultFields)
	cfg := config.EngineConfig{Hosts: []string{"es1:9200"}, Index: "catalog"}
	a, err := pool.Backend(cfg)
	require.NoError(t, err)
	b, err := pool.Backend(cfg)
	require.NoError(t, err)
	assert.Same(t, a, b)

	other, err := pool.Backend(config.EngineConfig{Hosts: []string{"es1:9200"}, Index: "catalog_no"})
	require.NoError(t, err)
	assert.NotSame(t, a, other)
}

func TestNormalizeHost(t *testing.T) {
	assert.Equal(t, "http://es1:9200", normalizeHost("es1:9200"))
	assert.Equal(t, "https://es1:9200", normalizeHost("https://es1:9200"))
}
