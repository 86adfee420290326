package config

import "strings"

// Gate decides whether the faceted engine pipeline is active. The store is
// read on every call so a config change applies to the next request.
type Gate struct {
	store Store
}

func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

func (g *Gate) IsActive() bool {
	if g == nil || g.store == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(g.store.String(EnginePath)), ElasticsearchEngineName)
}
