package session

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.Len(t, a, 32) // 16 bytes = 32 hex chars
	assert.NotEqual(t, a, b)
}

func TestGetOrCreateIdempotent(t *testing.T) {
	m := NewManager(NewMemoryStore(), logging.New("error"))
	ctx := context.Background()

	first := m.GetOrCreate(ctx, "browser-abc")
	second := m.GetOrCreate(ctx, "browser-abc")
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)

	other := m.GetOrCreate(ctx, "browser-xyz")
	assert.NotEqual(t, first, other)
}

func TestGetOrCreateEmptyKey(t *testing.T) {
	m := NewManager(NewMemoryStore(), logging.New("error"))
	ctx := context.Background()

	a := m.GetOrCreate(ctx, "")
	b := m.GetOrCreate(ctx, "   ")
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("store down")
}

func (brokenStore) Put(context.Context, string, string) error {
	return errors.New("store down")
}

func TestGetOrCreateDegradesOnStoreFailure(t *testing.T) {
	m := NewManager(brokenStore{}, logging.New("error"))

	id := m.GetOrCreate(context.Background(), "browser-abc")
	assert.NotEmpty(t, id, "storage failure must not surface to the caller")
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb)
	ctx := context.Background()

	_, err := store.Get(ctx, "browser-abc")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "browser-abc", "deadbeef"))

	id, err := store.Get(ctx, "browser-abc")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", id)
}

func TestGetOrCreateWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	m := NewManager(NewRedisStore(rdb), logging.New("error"))
	ctx := context.Background()

	first := m.GetOrCreate(ctx, "browser-abc")
	second := m.GetOrCreate(ctx, "browser-abc")
	assert.Equal(t, first, second)
}
