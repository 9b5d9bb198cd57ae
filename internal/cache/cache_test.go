package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/osint-framework/internal/config"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestStores(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	stores := map[string]Store{
		"memory": NewMemoryStore(8, time.Minute),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := store.Get(ctx, "/api/tools")
			require.NoError(t, err)
			assert.False(t, ok)

			entry := &Entry{Status: 200, ContentType: "application/json", Body: []byte(`{"success":true}`)}
			require.NoError(t, store.Set(ctx, "/api/tools", entry))

			got, ok, err := store.Get(ctx, "/api/tools")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, entry, got)

			require.NoError(t, store.Purge(ctx))
			_, ok, err = store.Get(ctx, "/api/tools")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", &Entry{Status: 200}))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"k"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStorePurgeKeepsForeignKeys(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("session:abc", "x"))
	require.NoError(t, store.Set(ctx, "a", &Entry{Status: 200}))
	require.NoError(t, store.Set(ctx, "b", &Entry{Status: 200}))

	require.NoError(t, store.Purge(ctx))
	assert.False(t, mr.Exists(keyPrefix+"a"))
	assert.False(t, mr.Exists(keyPrefix+"b"))
	assert.True(t, mr.Exists("session:abc"))
}

func TestMemoryStoreEvicts(t *testing.T) {
	store := NewMemoryStore(2, time.Minute)
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, store.Set(ctx, k, &Entry{Status: 200}))
	}
	assert.Equal(t, 2, store.Len())
	_, ok, _ := store.Get(ctx, "a")
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{Cache: config.CacheConfig{Backend: BackendMemory, TTLSeconds: 60}}
	store, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	cfg = &config.Config{
		Cache: config.CacheConfig{Backend: BackendRedis, TTLSeconds: 60},
		Redis: config.RedisConfig{Host: mr.Host(), Port: port},
	}
	store, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)
	require.NoError(t, store.Close())

	_, err = New(&config.Config{Cache: config.CacheConfig{Backend: "memcached", TTLSeconds: 60}})
	assert.Error(t, err)

	_, err = New(&config.Config{Cache: config.CacheConfig{Backend: BackendMemory}})
	assert.Error(t, err)
}
