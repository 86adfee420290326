package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveHostsTrimmedInOrder(t *testing.T) {
	cfg := ResolveEngineConfig(RawConfig{"servers": "es1:9200, es2:9200"})
	assert.Equal(t, []string{"es1:9200", "es2:9200"}, cfg.Hosts)
}

func TestResolveEmptyServers(t *testing.T) {
	cfg := ResolveEngineConfig(RawConfig{"servers": ""})
	assert.NotNil(t, cfg.Hosts)
	assert.Empty(t, cfg.Hosts)
	assert.False(t, cfg.SearchOnOptions)
}

func TestResolveMissingConfig(t *testing.T) {
	cfg := ResolveEngineConfig(nil)
	assert.Empty(t, cfg.Hosts)
	assert.False(t, cfg.SearchOnOptions)
	assert.Equal(t, DefaultIndex, cfg.Index)
	assert.Zero(t, cfg.Timeout)
}

func TestResolveDropsEmptyEntries(t *testing.T) {
	cfg := ResolveEngineConfig(RawConfig{"servers": " es1:9200 ,, ,es3:9200,"})
	assert.Equal(t, []string{"es1:9200", "es3:9200"}, cfg.Hosts)
}

func TestResolveOptionsFlag(t *testing.T) {
	for value, expected := range map[string]bool{
		"1":     true,
		"true":  true,
		"yes":   true,
		"0":     false,
		"":      false,
		"maybe": false,
	} {
		cfg := ResolveEngineConfig(RawConfig{"enable_options_search": value})
		assert.Equal(t, expected, cfg.SearchOnOptions, "value %q", value)
	}
}

func TestResolveTimeout(t *testing.T) {
	assert.Equal(t, 3*time.Second, ResolveEngineConfig(RawConfig{"timeout": "3"}).Timeout)
	assert.Zero(t, ResolveEngineConfig(RawConfig{"timeout": "soon"}).Timeout)
	assert.Zero(t, ResolveEngineConfig(RawConfig{"timeout": "-1"}).Timeout)
}

func TestEngineConfigFromStore(t *testing.T) {
	store := NewMapStore(map[string]string{
		"catalog/search/elasticsearch_servers":               "http://es1:9200,http://es2:9200",
		"catalog/search/elasticsearch_index":                 "products_se",
		"catalog/search/elasticsearch_enable_options_search": "1",
	})
	cfg := EngineConfigFromStore(store)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Hosts)
	assert.Equal(t, "products_se", cfg.Index)
	assert.True(t, cfg.SearchOnOptions)
}

func TestGateRereadsStore(t *testing.T) {
	store := NewMapStore(map[string]string{EnginePath: "mysql"})
	gate := NewGate(store)
	assert.False(t, gate.IsActive())

	store.Set(EnginePath, "elasticsearch")
	assert.True(t, gate.IsActive())

	store.Set(EnginePath, "")
	assert.False(t, gate.IsActive())
}

func TestNilGate(t *testing.T) {
	var gate *Gate
	assert.False(t, gate.IsActive())
}
