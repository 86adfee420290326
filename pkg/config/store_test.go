package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
catalog:
  search:
    engine: elasticsearch
    elasticsearch_servers:
      - es1:9200
      - es2:9200
    elasticsearch_enable_options_search: true
    elasticsearch_timeout: 5
`

func TestYAMLStore(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yamlConfig), 0o644))

	store, err := LoadYAMLStore(file)
	require.NoError(t, err)
	assert.Equal(t, "elasticsearch", store.String(EnginePath))
	assert.True(t, store.Flag(OptionsSearchPath))

	cfg := EngineConfigFromStore(store)
	assert.Equal(t, []string{"es1:9200", "es2:9200"}, cfg.Hosts)
	assert.True(t, NewGate(store).IsActive())
}

func TestYAMLStoreInvalid(t *testing.T) {
	_, err := ParseYAMLStore([]byte("catalog: [unterminated"))
	assert.Error(t, err)
}

func TestEnvStore(t *testing.T) {
	t.Setenv("LAYER_CATALOG_SEARCH_ENGINE", "elasticsearch")
	t.Setenv("LAYER_CATALOG_SEARCH_ELASTICSEARCH_SERVERS", "localhost:9200")
	store := EnvStore{Prefix: "layer"}
	assert.Equal(t, "elasticsearch", store.String(EnginePath))
	assert.Equal(t, []string{"localhost:9200"}, EngineConfigFromStore(store).Hosts)
}

func TestChainFirstNonEmpty(t *testing.T) {
	chain := Chain{
		NewMapStore(map[string]string{"a": ""}),
		NewMapStore(map[string]string{"a": "second", "b": "yes"}),
	}
	assert.Equal(t, "second", chain.String("a"))
	assert.True(t, chain.Flag("b"))
	assert.Equal(t, "", chain.String("missing"))
}
