package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryStore keeps session mappings in process memory. Suitable for local
// development and as the degraded fallback when Redis is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, clientKey string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[clientKey]
	if !ok {
		return "", ErrNotFound
	}
	return id, nil
}

func (s *MemoryStore) Put(_ context.Context, clientKey, sessionID string) error {
	s.mu.Lock()
	s.sessions[clientKey] = sessionID
	s.mu.Unlock()
	return nil
}

const sessionKeyPrefix = "session:"

// Sessions never expire. The browser holds its client key for life, so the
// mapping is kept indefinitely; a retention policy is a known gap.
const sessionTTL = time.Duration(0)

// RedisStore persists session mappings in Redis so identity survives server
// restarts.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, clientKey string) (string, error) {
	id, err := s.rdb.Get(ctx, sessionKeyPrefix+clientKey).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session: redis get: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Put(ctx context.Context, clientKey, sessionID string) error {
	if err := s.rdb.Set(ctx, sessionKeyPrefix+clientKey, sessionID, sessionTTL).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}
