package store

import (
	"context"

	"github.com/serroba/portal-api/internal/analytics"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of analytics.Store that logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveEvent(_ context.Context, event *analytics.Event) error {
	fields := []zap.Field{
		zap.String("type", string(event.Type)),
		zap.Time("occurredAt", event.OccurredAt),
		zap.String("requestId", event.RequestID),
	}

	switch event.Type {
	case analytics.EventSearchQuery, analytics.EventFilterUsed:
		fields = append(fields,
			zap.String("query", event.Query),
			zap.Int("resultsCount", event.ResultsCount),
			zap.Int64("latencyMs", event.LatencyMs),
			zap.Bool("cacheHit", event.CacheHit),
		)
	case analytics.EventServiceClick:
		fields = append(fields, zap.String("serviceId", event.ServiceID), zap.String("category", event.Category))
	default:
		fields = append(fields, zap.String("path", event.Path), zap.String("referrer", event.Referrer))
	}

	n.logger.Info("analytics event received", fields...)

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Noop)(nil)
