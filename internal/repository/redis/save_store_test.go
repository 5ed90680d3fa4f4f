package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-cli/internal/domain"
)

// memoryCache is an in-process stand-in for redis.
type memoryCache struct {
	values map[string]string
	sets   map[string]map[string]bool
	ttls   map[string]time.Duration
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		values: map[string]string{},
		sets:   map[string]map[string]bool{},
		ttls:   map[string]time.Duration{},
	}
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value.(string)
	m.ttls[key] = expiration
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *memoryCache) SAdd(_ context.Context, key string, members ...string) error {
	if m.sets[key] == nil {
		m.sets[key] = map[string]bool{}
	}
	for _, v := range members {
		m.sets[key][v] = true
	}
	return nil
}

func (m *memoryCache) SMembers(_ context.Context, key string) ([]string, error) {
	var out []string
	for v := range m.sets[key] {
		out = append(out, v)
	}
	return out, nil
}

func (m *memoryCache) SRem(_ context.Context, key string, members ...string) error {
	for _, v := range members {
		delete(m.sets[key], v)
	}
	return nil
}

func TestSaveStoreRoundTrip(t *testing.T) {
	cache := newMemoryCache()
	s := NewSaveStore(cache, time.Hour, nil)
	ctx := context.Background()

	loc, err := s.Save(ctx, "evening", []byte(`{"x":1}`))
	require.NoError(t, err)
	assert.Equal(t, "redis://connect4:save:evening", loc)
	assert.Equal(t, time.Hour, cache.ttls["connect4:save:evening"])

	data, err := s.Load(ctx, "evening")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(data))
}

func TestSaveStoreMissing(t *testing.T) {
	s := NewSaveStore(newMemoryCache(), 0, nil)
	_, err := s.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSaveNotFound)
}

func TestSaveStoreRejectsBadNames(t *testing.T) {
	s := NewSaveStore(newMemoryCache(), 0, nil)
	_, err := s.Save(context.Background(), "two words", []byte("{}"))
	assert.ErrorIs(t, err, domain.ErrInvalidSaveName)
	_, err = s.Load(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidSaveName)
}

func TestSaveStoreWrapsErrors(t *testing.T) {
	cache := newMemoryCache()
	cache.setErr = errors.New("connection reset")
	s := NewSaveStore(cache, 0, nil)

	_, err := s.Save(context.Background(), "g1", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Contains(t, err.Error(), "g1")
}

func TestSaveStoreListPrunesExpired(t *testing.T) {
	cache := newMemoryCache()
	s := NewSaveStore(cache, 0, nil)
	ctx := context.Background()

	for _, name := range []string{"b", "a", "c"} {
		_, err := s.Save(ctx, name, []byte("{}"))
		require.NoError(t, err)
	}
	// simulate expiry of c
	require.NoError(t, cache.Del(ctx, "connect4:save:c"))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.NotContains(t, cache.sets[saveIndexKey], "c")
}
