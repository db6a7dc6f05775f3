package store

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/serroba/portal-api/internal/ratelimit"
)

// DefaultSweepChance is the probability that a read also sweeps expired entries.
const DefaultSweepChance = 0.01

type counterEntry struct {
	record    ratelimit.Record
	expiresAt time.Time
}

// CounterMemoryStore is an in-memory implementation of ratelimit.Store.
// Each process holds its own counters, so quotas are per instance.
type CounterMemoryStore struct {
	mu          sync.Mutex
	entries     map[string]counterEntry
	now         func() time.Time
	random      func() float64
	sweepChance float64
}

// MemoryOption configures a CounterMemoryStore.
type MemoryOption func(*CounterMemoryStore)

// WithMemoryClock overrides the time source used for expiry.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *CounterMemoryStore) {
		s.now = now
	}
}

// WithSweepChance sets the probability in [0, 1] that a Get sweeps expired entries.
func WithSweepChance(chance float64) MemoryOption {
	return func(s *CounterMemoryStore) {
		s.sweepChance = chance
	}
}

// WithRandom overrides the random source deciding when to sweep.
func WithRandom(random func() float64) MemoryOption {
	return func(s *CounterMemoryStore) {
		s.random = random
	}
}

// NewCounterMemoryStore creates a new in-memory counter store.
func NewCounterMemoryStore(opts ...MemoryOption) *CounterMemoryStore {
	s := &CounterMemoryStore{
		entries:     make(map[string]counterEntry),
		now:         time.Now,
		random:      rand.Float64,
		sweepChance: DefaultSweepChance,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the record for key, or nil when absent or expired. It never fails.
func (s *CounterMemoryStore) Get(_ context.Context, key string) (*ratelimit.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if s.random() < s.sweepChance {
		s.sweepLocked(now)
	}

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}

	if !now.Before(entry.expiresAt) || entry.record.Expired(now.Unix()) {
		delete(s.entries, key)

		return nil, nil
	}

	record := entry.record

	return &record, nil
}

// Put stores the record until ttl elapses. It never fails.
func (s *CounterMemoryStore) Put(_ context.Context, key string, record ratelimit.Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = counterEntry{
		record:    record,
		expiresAt: s.now().Add(ttl),
	}

	return nil
}

// Sweep deletes every entry whose window has closed and returns how many were removed.
func (s *CounterMemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sweepLocked(s.now())
}

// Len returns the number of stored entries, expired or not.
func (s *CounterMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *CounterMemoryStore) sweepLocked(now time.Time) int {
	removed := 0

	for key, entry := range s.entries {
		if entry.record.Expired(now.Unix()) || !now.Before(entry.expiresAt) {
			delete(s.entries, key)

			removed++
		}
	}

	return removed
}

// Compile-time check.
var _ ratelimit.Store = (*CounterMemoryStore)(nil)
