package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/portal-api/internal/messaging"
	"go.uber.org/zap"
)

// Tracker forwards events to the analytics topic. Tracking never fails the
// caller: a tracker without a publisher skips events and publish errors are
// only logged.
type Tracker struct {
	publish messaging.Publish[Event]
	logger  *zap.Logger
	now     func() time.Time
}

// NewTracker creates a tracker. A nil publish disables forwarding.
func NewTracker(publish messaging.Publish[Event], logger *zap.Logger) *Tracker {
	return &Tracker{
		publish: publish,
		logger:  logger,
		now:     time.Now,
	}
}

// Enabled reports whether events are forwarded anywhere.
func (t *Tracker) Enabled() bool {
	return t != nil && t.publish != nil
}

// Track forwards event, stamping ID and OccurredAt when unset.
func (t *Tracker) Track(ctx context.Context, event Event) {
	if !t.Enabled() {
		return
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = t.now().UTC()
	}

	if err := t.publish(ctx, &event); err != nil {
		t.logger.Error("failed to publish analytics event",
			zap.String("type", string(event.Type)),
			zap.String("request_id", event.RequestID),
			zap.Error(err),
		)
	}
}

// TrackPageView records a page view of path.
func (t *Tracker) TrackPageView(ctx context.Context, path string, base Event) {
	base.Type = EventPageView
	base.Path = path

	t.Track(ctx, base)
}

// SearchOutcome describes a served search.
type SearchOutcome struct {
	Query        string
	ResultsCount int
	Latency      time.Duration
	CacheHit     bool
	Filters      SearchFilters
}

// TrackSearch records a search query and, when filters were applied,
// a filter_used event.
func (t *Tracker) TrackSearch(ctx context.Context, outcome SearchOutcome, base Event) {
	search := base
	search.Type = EventSearchQuery
	search.Query = outcome.Query
	search.ResultsCount = outcome.ResultsCount
	search.LatencyMs = outcome.Latency.Milliseconds()
	search.CacheHit = outcome.CacheHit

	filtered := len(outcome.Filters.Category) > 0 || len(outcome.Filters.Status) > 0 || len(outcome.Filters.Tags) > 0
	if filtered {
		filters := outcome.Filters
		search.Filters = &filters
	}

	t.Track(ctx, search)

	if filtered {
		used := base
		used.Type = EventFilterUsed
		used.Query = outcome.Query
		used.Filters = search.Filters

		t.Track(ctx, used)
	}
}
