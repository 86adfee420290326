package config

import (
	"os"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

// Store yields raw configuration values by path, for example
// "catalog/search/engine". Missing keys return the zero value.
type Store interface {
	String(path string) string
	Flag(path string) bool
}

// IsTruthy reports whether a raw configuration value enables a flag.
func IsTruthy(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "yes", "on", "y":
		return true
	}
	return cast.ToBool(value)
}

// MapStore keeps configuration in memory.
type MapStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMapStore(values map[string]string) *MapStore {
	s := &MapStore{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *MapStore) Set(path, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[path] = value
}

func (s *MapStore) String(path string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[path]
}

func (s *MapStore) Flag(path string) bool {
	return IsTruthy(s.String(path))
}

// EnvStore maps configuration paths to environment variables:
// "catalog/search/engine" is read from CATALOG_SEARCH_ENGINE.
type EnvStore struct {
	Prefix string
}

func EnvName(prefix, path string) string {
	name := strings.ToUpper(strings.NewReplacer("/", "_", ".", "_", "-", "_").Replace(path))
	if prefix != "" {
		return strings.ToUpper(prefix) + "_" + name
	}
	return name
}

func (s EnvStore) String(path string) string {
	return os.Getenv(EnvName(s.Prefix, path))
}

func (s EnvStore) Flag(path string) bool {
	return IsTruthy(s.String(path))
}

// Chain returns the first non-empty value from the given stores.
type Chain []Store

func (c Chain) String(path string) string {
	for _, s := range c {
		if v := s.String(path); v != "" {
			return v
		}
	}
	return ""
}

func (c Chain) Flag(path string) bool {
	return IsTruthy(c.String(path))
}
