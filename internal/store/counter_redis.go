package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/portal-api/internal/ratelimit"
)

// ErrMalformedRecord is returned when a stored counter cannot be decoded.
var ErrMalformedRecord = errors.New("malformed counter record")

// RedisCounterStore is a Redis implementation of ratelimit.Store.
// Records are JSON strings under prefix+key and expire with the window.
type RedisCounterStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// RedisOption configures a RedisCounterStore.
type RedisOption func(*RedisCounterStore)

// WithRedisClock overrides the time source used to discard closed windows.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(r *RedisCounterStore) {
		r.now = now
	}
}

// NewRedisCounterStore creates a new Redis-backed counter store.
func NewRedisCounterStore(client *redis.Client, opts ...RedisOption) *RedisCounterStore {
	r := &RedisCounterStore{
		client: client,
		prefix: "ratelimit:",
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Get returns the record for key, or nil when absent or expired.
func (r *RedisCounterStore) Get(ctx context.Context, key string) (*ratelimit.Record, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, err
	}

	return liveRecord(raw, r.now())
}

// liveRecord decodes raw and reports a record whose window closed by now as absent.
func liveRecord(raw []byte, now time.Time) (*ratelimit.Record, error) {
	record, err := DecodeRecord(raw)
	if err != nil {
		return nil, err
	}

	if record.Expired(now.Unix()) {
		return nil, nil
	}

	return record, nil
}

// Put stores the record with an expiry of ttl. A non-positive ttl is rounded
// up to one second so the key never lives forever.
func (r *RedisCounterStore) Put(ctx context.Context, key string, record ratelimit.Record, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if ttl < time.Second {
		ttl = time.Second
	}

	return r.client.Set(ctx, r.prefix+key, payload, ttl).Err()
}

// Shutdown is a no-op for RedisCounterStore (client managed externally).
func (r *RedisCounterStore) Shutdown() error {
	return nil
}

// DecodeRecord parses the stored JSON form of a counter record.
func DecodeRecord(raw []byte) (*ratelimit.Record, error) {
	var record ratelimit.Record

	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	if record.Count < 0 || record.ResetAt <= 0 {
		return nil, fmt.Errorf("%w: count=%d resetAt=%d", ErrMalformedRecord, record.Count, record.ResetAt)
	}

	return &record, nil
}

// Compile-time check.
var _ ratelimit.Store = (*RedisCounterStore)(nil)
