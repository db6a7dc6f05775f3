//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/portal-api/internal/ratelimit"
	"github.com/serroba/portal-api/internal/search"
	"github.com/serroba/portal-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	return client
}

func TestRedisCounterStoreIntegration(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	s := store.NewRedisCounterStore(client)

	t.Run("put and get record", func(t *testing.T) {
		key := "it-search-api:1.2.3.4"
		record := ratelimit.Record{Count: 2, ResetAt: time.Now().Unix() + 60}

		err := s.Put(ctx, key, record, time.Minute)
		require.NoError(t, err)

		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, record, *got)

		ttl := client.TTL(ctx, "ratelimit:"+key).Val()
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)

		// Cleanup
		client.Del(ctx, "ratelimit:"+key)
	})

	t.Run("missing key returns nil", func(t *testing.T) {
		got, err := s.Get(ctx, "it-nonexistent")

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("malformed value returns error", func(t *testing.T) {
		client.Set(ctx, "ratelimit:it-bad", "not-json", time.Minute)

		got, err := s.Get(ctx, "it-bad")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrMalformedRecord)

		// Cleanup
		client.Del(ctx, "ratelimit:it-bad")
	})

	t.Run("closed window reads as absent under the injected clock", func(t *testing.T) {
		key := "it-clock:1.2.3.4"
		now := time.Now()
		record := ratelimit.Record{Count: 1, ResetAt: now.Unix() + 10}
		later := store.NewRedisCounterStore(client, store.WithRedisClock(func() time.Time {
			return now.Add(10 * time.Second)
		}))

		require.NoError(t, s.Put(ctx, key, record, time.Minute))

		got, err := later.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, got)

		client.Del(ctx, "ratelimit:"+key)
	})

	t.Run("limiter over redis enforces the limit", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(s, zap.NewNop())
		cfg := ratelimit.Config{Limit: 2, WindowSeconds: 60, Identifier: "it-limiter"}

		assert.True(t, limiter.Check(ctx, "client", cfg).Allowed)
		assert.True(t, limiter.Check(ctx, "client", cfg).Allowed)
		assert.False(t, limiter.Check(ctx, "client", cfg).Allowed)

		// Cleanup
		client.Del(ctx, "ratelimit:"+cfg.Key("client"))
	})
}

func TestSearchCacheIntegration(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	provider := search.NewCatalogProvider(search.DefaultCatalog())
	cache := store.NewSearchCache(provider, client, time.Minute, zap.NewNop())
	query := search.Query{Text: "integration-cache cloud"}

	client.Del(ctx, cache.Key(query))

	first, err := cache.Search(ctx, query)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := cache.Search(ctx, query)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Found, second.Found)

	// Cleanup
	client.Del(ctx, cache.Key(query))
}
