package facet

import (
	"strings"
	"sync"

	"github.com/matst80/slask-layer/pkg/types"
)

// TemplateRegistry holds render template overrides keyed by short filter
// name, "price" overrides the template of "price_filter".
type TemplateRegistry struct {
	mu        sync.RWMutex
	templates map[string]string
}

func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]string),
	}
}

func (r *TemplateRegistry) Register(filterName, template string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[strings.TrimSuffix(filterName, types.FilterNameSuffix)] = template
}

func (r *TemplateRegistry) Template(filterName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[filterName]
	return t, ok
}

func (r *TemplateRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// ApplyAll sets the override on every filter that has one. Overrides for
// filters not present are ignored.
func (r *TemplateRegistry) ApplyAll(filters []*Filter) {
	if r == nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range filters {
		key := strings.TrimSuffix(f.Name, types.FilterNameSuffix)
		if t, ok := r.templates[key]; ok {
			f.Template = t
		}
	}
}
