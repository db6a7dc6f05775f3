package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/portal-api/internal/ratelimit"
	"go.uber.org/zap"
)

// Checker decides whether a client may proceed under a limit config.
type Checker interface {
	Check(ctx context.Context, clientID string, cfg ratelimit.Config) ratelimit.Result
}

// RateLimiterOption configures the RateLimiter middleware.
type RateLimiterOption func(*rateLimiterConfig)

type rateLimiterConfig struct {
	now func() time.Time
}

// WithNow overrides the clock used to compute Retry-After. It should match
// the clock of the limiter.
func WithNow(now func() time.Time) RateLimiterOption {
	return func(c *rateLimiterConfig) {
		c.now = now
	}
}

// RateLimiter returns a Huma middleware that applies the policy attached to
// each operation. Quota headers are set on every limited response. Denied
// requests get a 429 JSON body and never reach the handler.
//
// Per-endpoint configuration is read from operation metadata under
// ratelimit.MetadataKey. Operations without it use the default policy.
func RateLimiter(
	limiter Checker,
	policies *ratelimit.Policies,
	clientIPHeader string,
	logger *zap.Logger,
	opts ...RateLimiterOption,
) func(ctx huma.Context, next func(huma.Context)) {
	cfg := rateLimiterConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		policy, limited := ratelimit.ResolvePolicy(ctx)
		if !limited {
			next(ctx)

			return
		}

		limit := policies.Lookup(policy)
		clientID := ClientID(ctx, clientIPHeader)

		result := limiter.Check(ctx.Context(), clientID, limit)
		ratelimit.SetHeaders(ctx, result)

		if !result.Allowed {
			logger.Info("rate limit exceeded",
				zap.String("path", operationPath(ctx)),
				zap.String("method", ctx.Method()),
				zap.String("identifier", limit.Identifier),
				zap.String("client_ip", clientID),
				zap.Int64("limit", result.Limit),
				zap.Int64("reset_at", result.ResetAt),
			)

			writeExceeded(ctx, result, cfg.now(), logger)

			return
		}

		next(ctx)
	}
}

func writeExceeded(ctx huma.Context, result ratelimit.Result, now time.Time, logger *zap.Logger) {
	body := ratelimit.Exceeded(result, now)

	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetHeader(ratelimit.HeaderRetryAfter, strconv.FormatInt(body.RetryAfter, 10))
	ctx.SetStatus(http.StatusTooManyRequests)

	if err := json.NewEncoder(ctx.BodyWriter()).Encode(body); err != nil {
		logger.Debug("failed to write rate limit response", zap.Error(err))
	}
}

// operationPath extracts the path from the operation, if available.
func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}
