package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/serroba/portal-api/internal/ratelimit"
	"github.com/serroba/portal-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func never() float64  { return 1 }
func always() float64 { return 0 }

func TestCounterMemoryStore(t *testing.T) {
	t.Run("get missing key returns nil", func(t *testing.T) {
		s := store.NewCounterMemoryStore()

		got, err := s.Get(context.Background(), "missing")

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("put then get returns the record", func(t *testing.T) {
		clock := newTestClock()
		s := store.NewCounterMemoryStore(store.WithMemoryClock(clock.Now), store.WithRandom(never))
		record := ratelimit.Record{Count: 3, ResetAt: clock.Now().Unix() + 60}

		require.NoError(t, s.Put(context.Background(), "key1", record, time.Minute))

		got, err := s.Get(context.Background(), "key1")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, record, *got)
	})

	t.Run("put overwrites", func(t *testing.T) {
		clock := newTestClock()
		s := store.NewCounterMemoryStore(store.WithMemoryClock(clock.Now), store.WithRandom(never))
		resetAt := clock.Now().Unix() + 60

		_ = s.Put(context.Background(), "key1", ratelimit.Record{Count: 1, ResetAt: resetAt}, time.Minute)
		_ = s.Put(context.Background(), "key1", ratelimit.Record{Count: 2, ResetAt: resetAt}, time.Minute)

		got, err := s.Get(context.Background(), "key1")

		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Count)
	})

	t.Run("tracks keys independently", func(t *testing.T) {
		clock := newTestClock()
		s := store.NewCounterMemoryStore(store.WithMemoryClock(clock.Now), store.WithRandom(never))
		resetAt := clock.Now().Unix() + 60

		_ = s.Put(context.Background(), "key1", ratelimit.Record{Count: 5, ResetAt: resetAt}, time.Minute)

		got, err := s.Get(context.Background(), "key2")

		require.NoError(t, err)
		assert.Nil(t, got, "key2 should have no record")
	})

	t.Run("expires after ttl", func(t *testing.T) {
		clock := newTestClock()
		s := store.NewCounterMemoryStore(store.WithMemoryClock(clock.Now), store.WithRandom(never))
		resetAt := clock.Now().Unix() + 60

		_ = s.Put(context.Background(), "key1", ratelimit.Record{Count: 1, ResetAt: resetAt}, time.Minute)

		clock.Advance(59 * time.Second)

		got, _ := s.Get(context.Background(), "key1")
		assert.NotNil(t, got)

		clock.Advance(time.Second)

		got, err := s.Get(context.Background(), "key1")

		require.NoError(t, err)
		assert.Nil(t, got, "record should expire at reset time")
	})

	t.Run("record past reset is absent even with a longer ttl", func(t *testing.T) {
		clock := newTestClock()
		s := store.NewCounterMemoryStore(store.WithMemoryClock(clock.Now), store.WithRandom(never))

		_ = s.Put(context.Background(), "key1", ratelimit.Record{Count: 1, ResetAt: clock.Now().Unix() + 10}, time.Hour)

		clock.Advance(10 * time.Second)

		got, err := s.Get(context.Background(), "key1")

		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCounterMemoryStore_Sweep(t *testing.T) {
	t.Run("explicit sweep removes only expired entries", func(t *testing.T) {
		clock := newTestClock()
		s := store.NewCounterMemoryStore(store.WithMemoryClock(clock.Now), store.WithRandom(never))
		now := clock.Now().Unix()

		_ = s.Put(context.Background(), "short", ratelimit.Record{Count: 1, ResetAt: now + 10}, 10*time.Second)
		_ = s.Put(context.Background(), "long", ratelimit.Record{Count: 1, ResetAt: now + 120}, 2*time.Minute)

		clock.Advance(30 * time.Second)

		assert.Equal(t, 1, s.Sweep())
		assert.Equal(t, 1, s.Len())

		got, _ := s.Get(context.Background(), "long")
		assert.NotNil(t, got)
	})

	t.Run("get sweeps when the random draw hits", func(t *testing.T) {
		clock := newTestClock()
		s := store.NewCounterMemoryStore(store.WithMemoryClock(clock.Now), store.WithRandom(always))
		now := clock.Now().Unix()

		for _, key := range []string{"a", "b", "c"} {
			_ = s.Put(context.Background(), key, ratelimit.Record{Count: 1, ResetAt: now + 5}, 5*time.Second)
		}

		clock.Advance(time.Minute)

		_, _ = s.Get(context.Background(), "other")

		assert.Zero(t, s.Len(), "expired entries should be swept")
	})

	t.Run("get does not sweep when the random draw misses", func(t *testing.T) {
		clock := newTestClock()
		s := store.NewCounterMemoryStore(store.WithMemoryClock(clock.Now), store.WithRandom(never))
		now := clock.Now().Unix()

		for _, key := range []string{"a", "b", "c"} {
			_ = s.Put(context.Background(), key, ratelimit.Record{Count: 1, ResetAt: now + 5}, 5*time.Second)
		}

		clock.Advance(time.Minute)

		_, _ = s.Get(context.Background(), "other")

		assert.Equal(t, 3, s.Len())
	})

	t.Run("sweep chance is compared against the draw", func(t *testing.T) {
		clock := newTestClock()
		s := store.NewCounterMemoryStore(
			store.WithMemoryClock(clock.Now),
			store.WithSweepChance(0.5),
			store.WithRandom(func() float64 { return 0.4 }),
		)

		_ = s.Put(context.Background(), "a", ratelimit.Record{Count: 1, ResetAt: clock.Now().Unix() + 5}, 5*time.Second)

		clock.Advance(time.Minute)

		_, _ = s.Get(context.Background(), "other")

		assert.Zero(t, s.Len())
	})
}

func TestCounterMemoryStore_Concurrent(t *testing.T) {
	s := store.NewCounterMemoryStore(store.WithSweepChance(0.5))
	resetAt := time.Now().Add(time.Minute).Unix()

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			_ = s.Put(context.Background(), "shared", ratelimit.Record{Count: int64(n), ResetAt: resetAt}, time.Minute)
			_, _ = s.Get(context.Background(), "shared")
		}(i)
	}

	wg.Wait()

	got, err := s.Get(context.Background(), "shared")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, resetAt, got.ResetAt)
}
