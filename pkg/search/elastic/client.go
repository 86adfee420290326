package elastic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/matst80/slask-layer/pkg/common/jsoncompat"
	"github.com/matst80/slask-layer/pkg/config"
	"github.com/matst80/slask-layer/pkg/search"
)

type Fields struct {
	Fulltext string
	Options  string
}

var DefaultFields = Fields{
	Fulltext: "fulltext",
	Options:  "fulltext_options",
}

// Backend runs layer queries against one Elasticsearch index.
type Backend struct {
	client *elasticsearch.Client
	index  string
	fields Fields
}

func normalizeHost(host string) string {
	if strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}

func NewClient(cfg config.EngineConfig) (*elasticsearch.Client, error) {
	addresses := make([]string, 0, len(cfg.Hosts))
	for _, host := range cfg.Hosts {
		addresses = append(addresses, normalizeHost(host))
	}
	esCfg := elasticsearch.Config{
		Addresses: addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	}
	if cfg.Timeout > 0 {
		esCfg.Transport = &http.Transport{
			ResponseHeaderTimeout: cfg.Timeout,
		}
	}
	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating the client: %w", err)
	}
	return client, nil
}

func NewBackend(client *elasticsearch.Client, index string, fields Fields) *Backend {
	return &Backend{
		client: client,
		index:  index,
		fields: fields,
	}
}

func (b *Backend) Client() *elasticsearch.Client {
	return b.client
}

func (b *Backend) Execute(ctx context.Context, q *search.Query) (*search.Response, error) {
	body, err := jsoncompat.Marshal(BuildRequestBody(q, b.fields))
	if err != nil {
		return nil, fmt.Errorf("error encoding query: %w", err)
	}

	req := esapi.SearchRequest{
		Index:          []string{b.index},
		Body:           bytes.NewReader(body),
		TrackTotalHits: true,
	}
	res, err := req.Do(ctx, b.client)
	if err != nil {
		return nil, fmt.Errorf("error getting response: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error response: %s", res.String())
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	return ParseResponse(data, q)
}

// Pool keeps one backend per connection setup and index.
type Pool struct {
	mu       sync.Mutex
	fields   Fields
	backends map[string]*Backend
}

func NewPool(fields Fields) *Pool {
	return &Pool{
		fields:   fields,
		backends: make(map[string]*Backend),
	}
}

func (p *Pool) Backend(cfg config.EngineConfig) (search.Backend, error) {
	key := cfg.Key() + "|" + cfg.Index
	p.mu.Lock()
	defer p.mu.Unlock()
	if b, ok := p.backends[key]; ok {
		return b, nil
	}
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	b := NewBackend(client, cfg.Index, p.fields)
	p.backends[key] = b
	return b, nil
}
