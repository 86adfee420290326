package config

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	EnginePath              = "catalog/search/engine"
	EngineConfigPrefix      = "catalog/search/elasticsearch_"
	OptionsSearchPath       = "catalog/search/elasticsearch_enable_options_search"
	ElasticsearchEngineName = "elasticsearch"

	DefaultIndex = "catalog"
)

// RawConfig is the engine configuration with the store prefix stripped,
// e.g. "servers" or "index".
type RawConfig map[string]string

type EngineConfig struct {
	Hosts           []string      `json:"hosts"`
	SearchOnOptions bool          `json:"searchOnOptions"`
	Index           string        `json:"index"`
	Username        string        `json:"-"`
	Password        string        `json:"-"`
	Timeout         time.Duration `json:"timeout,omitempty"`
}

var engineConfigKeys = []string{"servers", "index", "username", "password", "timeout"}

// EngineConfigData collects the prefixed engine keys from the store. The
// options search flag lives under its own path and is added as
// "enable_options_search".
func EngineConfigData(store Store, prefix string) RawConfig {
	raw := make(RawConfig, len(engineConfigKeys)+1)
	for _, key := range engineConfigKeys {
		if v := store.String(prefix + key); v != "" {
			raw[key] = v
		}
	}
	if store.Flag(OptionsSearchPath) {
		raw["enable_options_search"] = "1"
	}
	return raw
}

// ResolveEngineConfig never fails: anything missing or malformed falls back
// to an empty host list and disabled options search.
func ResolveEngineConfig(raw RawConfig) EngineConfig {
	cfg := EngineConfig{
		Hosts:           ParseHosts(raw["servers"]),
		SearchOnOptions: IsTruthy(raw["enable_options_search"]),
		Index:           strings.TrimSpace(raw["index"]),
		Username:        raw["username"],
		Password:        raw["password"],
	}
	if cfg.Index == "" {
		cfg.Index = DefaultIndex
	}
	if seconds, err := cast.ToIntE(strings.TrimSpace(raw["timeout"])); err == nil && seconds > 0 {
		cfg.Timeout = time.Duration(seconds) * time.Second
	}
	return cfg
}

func ParseHosts(servers string) []string {
	hosts := []string{}
	for _, server := range strings.Split(servers, ",") {
		if host := strings.TrimSpace(server); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

// EngineConfigFromStore is the per request entry point.
func EngineConfigFromStore(store Store) EngineConfig {
	return ResolveEngineConfig(EngineConfigData(store, EngineConfigPrefix))
}

// Key identifies a connection setup, used to pool clients.
func (c EngineConfig) Key() string {
	return strings.Join(c.Hosts, ",") + "|" + c.Username + "|" + c.Timeout.String()
}
