package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/matst80/slask-layer/pkg/common/jsoncompat"
	"github.com/matst80/slask-layer/pkg/types"
	"github.com/redis/go-redis/v9"
)

// StateStore keeps the navigation state between requests of a session.
// Load returns nil without error when nothing is stored.
type StateStore interface {
	Load(ctx context.Context, sessionId string) (*types.LayerState, error)
	Save(ctx context.Context, sessionId string, state *types.LayerState) error
}

const statePrefix = "layer_state:"

type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, ttl: ttl}
}

func stateKey(sessionId string) string {
	return statePrefix + sessionId
}

func (s *RedisStateStore) Load(ctx context.Context, sessionId string) (*types.LayerState, error) {
	data, err := s.client.Get(ctx, stateKey(sessionId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load layer state: %w", err)
	}
	state := &types.LayerState{}
	if err := jsoncompat.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decode layer state: %w", err)
	}
	return state, nil
}

func (s *RedisStateStore) Save(ctx context.Context, sessionId string, state *types.LayerState) error {
	data, err := jsoncompat.Marshal(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, stateKey(sessionId), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save layer state: %w", err)
	}
	return nil
}

type MemoryStateStore struct {
	mu     sync.RWMutex
	states map[string][]types.Selection
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string][]types.Selection)}
}

func (s *MemoryStateStore) Load(ctx context.Context, sessionId string) (*types.LayerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	selected, ok := s.states[sessionId]
	if !ok {
		return nil, nil
	}
	return types.NewLayerState(selected...), nil
}

func (s *MemoryStateStore) Save(ctx context.Context, sessionId string, state *types.LayerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == nil {
		delete(s.states, sessionId)
		return nil
	}
	s.states[sessionId] = append([]types.Selection(nil), state.Selected...)
	return nil
}

// Resolve picks the state for a request: the request's own selections are
// stored and used, otherwise the stored state of the session continues.
func Resolve(ctx context.Context, store StateStore, sessionId string, req *LayerRequest) (*types.LayerState, error) {
	if store == nil {
		return req.State(), nil
	}
	if req.HasSelection() {
		state := req.State()
		if err := store.Save(ctx, sessionId, state); err != nil {
			return nil, err
		}
		return state, nil
	}
	state, err := store.Load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return req.State(), nil
	}
	return state, nil
}
