package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store persists the current booking per session. Saves overwrite.
type Store interface {
	Save(ctx context.Context, sessionID string, b Booking) error
	Current(ctx context.Context, sessionID string) (Booking, bool, error)
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps current bookings in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[string]Booking
}

// NewMemoryStore creates an empty in-memory booking store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookings: make(map[string]Booking)}
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, b Booking) error {
	s.mu.Lock()
	s.bookings[sessionID] = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Current(_ context.Context, sessionID string) (Booking, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[sessionID]
	return b, ok, nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.bookings, sessionID)
	s.mu.Unlock()
	return nil
}

const bookingKeyPrefix = "booking:current:"

// RedisStore keeps current bookings in Redis so they survive restarts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed booking store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, b Booking) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("booking: marshal booking: %w", err)
	}
	if err := s.client.Set(ctx, bookingKeyPrefix+sessionID, data, 0).Err(); err != nil {
		return fmt.Errorf("booking: save booking: %w", err)
	}
	return nil
}

func (s *RedisStore) Current(ctx context.Context, sessionID string) (Booking, bool, error) {
	data, err := s.client.Get(ctx, bookingKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return Booking{}, false, nil
	}
	if err != nil {
		return Booking{}, false, fmt.Errorf("booking: load booking: %w", err)
	}
	var b Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return Booking{}, false, fmt.Errorf("booking: decode booking: %w", err)
	}
	return b, true, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, bookingKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("booking: clear booking: %w", err)
	}
	return nil
}
