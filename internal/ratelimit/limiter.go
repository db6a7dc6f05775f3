package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Result is the outcome of a single limit check.
type Result struct {
	Allowed   bool
	Remaining int64
	ResetAt   int64 // unix seconds
	Limit     int64
}

// Limiter enforces fixed-window limits on top of a Store.
//
// The read and the write of a check are separate store calls, so concurrent
// requests for the same key inside one window can both observe the same count
// and over-admit. Counting is approximate under contention.
type Limiter struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source used to compute windows.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// NewLimiter creates a new fixed window limiter.
func NewLimiter(store Store, logger *zap.Logger, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Check decides whether clientID may proceed under cfg.
// Store failures never surface to the caller: a failed read admits the
// request with a full quota, a failed write keeps the decision already made.
func (l *Limiter) Check(ctx context.Context, clientID string, cfg Config) Result {
	key := cfg.Key(clientID)
	now := l.now().Unix()
	windowEnd := now + int64(cfg.WindowSeconds)
	limit := int64(cfg.Limit)

	record, err := l.store.Get(ctx, key)
	if err != nil {
		l.logger.Error("rate limit store read failed, allowing request",
			zap.String("key", key),
			zap.Error(err),
		)

		return Result{
			Allowed:   true,
			Remaining: limit,
			ResetAt:   windowEnd,
			Limit:     limit,
		}
	}

	count, resetAt := int64(0), windowEnd
	if record != nil && !record.Expired(now) {
		count, resetAt = record.Count, record.ResetAt
	}

	allowed := count < limit

	if allowed {
		ttl := time.Duration(resetAt-now) * time.Second
		next := Record{Count: count + 1, ResetAt: resetAt}

		if err := l.store.Put(ctx, key, next, ttl); err != nil {
			l.logger.Warn("rate limit store write failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return Result{
		Allowed:   allowed,
		Remaining: remaining(limit, count, allowed),
		ResetAt:   resetAt,
		Limit:     limit,
	}
}

func remaining(limit, count int64, allowed bool) int64 {
	left := limit - count
	if allowed {
		left--
	}

	return max(0, left)
}
