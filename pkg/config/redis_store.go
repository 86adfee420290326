package config

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type localEntry struct {
	expires time.Time
	value   string
}

// RedisStore reads configuration from a single redis hash. Values are kept
// locally for a short time so a request does not hit redis once per key.
type RedisStore struct {
	client   *redis.Client
	key      string
	ttl      time.Duration
	mu       sync.Mutex
	memCache map[string]localEntry
}

func NewRedisStore(addr, password string, db int, key string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{
		client:   rdb,
		key:      key,
		ttl:      5 * time.Second,
		memCache: make(map[string]localEntry),
	}
}

func (s *RedisStore) String(path string) string {
	s.mu.Lock()
	local, found := s.memCache[path]
	s.mu.Unlock()
	if found && local.expires.After(time.Now()) {
		return local.value
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	value, err := s.client.HGet(ctx, s.key, path).Result()
	if err != nil && err != redis.Nil {
		log.Printf("config lookup %s failed: %v", path, err)
		return ""
	}

	s.mu.Lock()
	s.memCache[path] = localEntry{expires: time.Now().Add(s.ttl), value: value}
	s.mu.Unlock()
	return value
}

func (s *RedisStore) Flag(path string) bool {
	return IsTruthy(s.String(path))
}

func (s *RedisStore) Set(ctx context.Context, path, value string) error {
	s.mu.Lock()
	delete(s.memCache, path)
	s.mu.Unlock()
	return s.client.HSet(ctx, s.key, path, value).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
