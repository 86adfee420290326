package catalog

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/matst80/slask-layer/pkg/types"
	"github.com/robfig/cron/v3"
)

type ChangeAction string

const (
	AddAttribute    ChangeAction = "add"
	RemoveAttribute ChangeAction = "remove"
	UpdateAttribute ChangeAction = "update"
)

type AttributeChange struct {
	Action    ChangeAction              `json:"action"`
	Attribute types.AttributeDescriptor `json:"attribute"`
}

// Cache serves the attribute list from memory. It is filled from a source
// provider and kept current by scheduled refreshes and change messages.
type Cache struct {
	mu     sync.RWMutex
	source Provider
	attrs  []types.AttributeDescriptor
	loaded bool
	cron   *cron.Cron
}

func NewCache(source Provider) *Cache {
	return &Cache{source: source}
}

func (c *Cache) Refresh(ctx context.Context) error {
	attrs, err := c.source.Filterable(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attrs = attrs
	c.loaded = true
	log.Printf("loaded %d filterable attributes", len(attrs))
	return nil
}

func (c *Cache) Filterable(ctx context.Context) ([]types.AttributeDescriptor, error) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.attrs), nil
}

func (c *Cache) HandleChanges(changes []AttributeChange) {
	c.mu.Lock()
	defer c.mu.Unlock()
	log.Printf("updating attributes %d", len(changes))
	for _, change := range changes {
		idx := slices.IndexFunc(c.attrs, func(a types.AttributeDescriptor) bool {
			return a.Code == change.Attribute.Code
		})
		switch change.Action {
		case AddAttribute:
			if idx == -1 {
				c.attrs = append(c.attrs, change.Attribute)
			} else {
				c.attrs[idx] = change.Attribute
			}
		case UpdateAttribute:
			if idx != -1 {
				c.attrs[idx].UpdateFrom(&change.Attribute)
			}
		case RemoveAttribute:
			if idx != -1 {
				c.attrs = slices.Delete(c.attrs, idx, idx+1)
			}
		default:
			log.Printf("unknown attribute change %q for %s", change.Action, change.Attribute.Code)
		}
	}
	SortByPosition(c.attrs)
}

// StartRefresh reloads the attributes on the given cron schedule, for
// example "@every 5m".
func (c *Cache) StartRefresh(schedule string) error {
	cr := cron.New()
	_, err := cr.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.Refresh(ctx); err != nil {
			log.Printf("attribute refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	c.cron = cr
	cr.Start()
	return nil
}

func (c *Cache) Stop() {
	if c.cron != nil {
		<-c.cron.Stop().Done()
	}
}
