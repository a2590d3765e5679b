// Package session manages durable per-browser session identity. A browser
// presents an opaque client key (cookie or locally persisted value); the
// manager maps it to a stable session id that survives reloads.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// ErrNotFound is returned by stores when no session id exists for a key.
var ErrNotFound = errors.New("session: not found")

// Store persists the client-key to session-id mapping.
type Store interface {
	Get(ctx context.Context, clientKey string) (string, error)
	Put(ctx context.Context, clientKey, sessionID string) error
}

// Manager hands out session ids. Repeated calls with the same client key
// return the same id. When the backing store is unavailable the manager
// degrades to a fresh, unpersisted id rather than failing.
type Manager struct {
	store  Store
	logger *logging.Logger
}

// NewManager creates a session manager backed by the given store.
func NewManager(store Store, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{store: store, logger: logger}
}

// GetOrCreate returns the session id for the client key, generating and
// persisting a new one if none exists. An empty client key always yields a
// fresh unpersisted id.
func (m *Manager) GetOrCreate(ctx context.Context, clientKey string) string {
	clientKey = strings.TrimSpace(clientKey)
	if clientKey == "" {
		return NewID()
	}

	id, err := m.store.Get(ctx, clientKey)
	if err == nil && id != "" {
		return id
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		m.logger.Warn("session: store read failed, using unpersisted id", "error", err)
		return NewID()
	}

	id = NewID()
	if err := m.store.Put(ctx, clientKey, id); err != nil {
		// Still usable for this call, just not stable across reloads.
		m.logger.Warn("session: store write failed, id will not persist", "error", err)
	}
	return id
}

// NewID generates an opaque session identifier.
func NewID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// rand.Read only fails when the OS entropy source is broken.
		panic("session: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
