package ratelimit

import (
	"context"
	"time"
)

// Record is the window-tracking state stored per counter key.
type Record struct {
	Count   int64 `json:"count"`
	ResetAt int64 `json:"resetAt"` // unix seconds
}

// Expired reports whether the window has closed at the given unix second.
func (r Record) Expired(now int64) bool {
	return r.ResetAt <= now
}

// Store defines the interface for counter record storage.
type Store interface {
	// Get returns the record for key, or nil when absent or expired.
	Get(ctx context.Context, key string) (*Record, error)

	// Put stores the record and lets the backend discard it after ttl.
	Put(ctx context.Context, key string, record Record, ttl time.Duration) error
}
