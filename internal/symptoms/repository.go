package symptoms

import (
	"context"
	"sync"
	"time"
)

// Repository defines the interface for symptom storage. Implementations must
// preserve insertion order per session.
type Repository interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context, sessionID string) ([]Record, error)
}

// InMemoryRepository stores symptom records in process memory keyed by
// session id. The default store; swapped for Postgres in production.
type InMemoryRepository struct {
	mu      sync.RWMutex
	buckets map[string][]Record
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{buckets: make(map[string][]Record)}
}

// Append adds a record to the session's bucket.
func (r *InMemoryRepository) Append(_ context.Context, rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	r.mu.Lock()
	r.buckets[rec.SessionID] = append(r.buckets[rec.SessionID], rec)
	r.mu.Unlock()
	return nil
}

// List returns the session's records in insertion order. Unknown sessions
// yield an empty slice, never an error.
func (r *InMemoryRepository) List(_ context.Context, sessionID string) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bucket := r.buckets[sessionID]
	out := make([]Record, len(bucket))
	copy(out, bucket)
	return out, nil
}
