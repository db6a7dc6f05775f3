package handlers

import (
	"context"
	"time"

	"github.com/serroba/portal-api/internal/analytics"
)

// AnalyticsTestPath is the route of the analytics forwarding probe.
const AnalyticsTestPath = "/api/analytics-test"

// AnalyticsHandler exposes a probe that writes a test event.
type AnalyticsHandler struct {
	tracker *analytics.Tracker
	now     func() time.Time
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(tracker *analytics.Tracker) *AnalyticsHandler {
	return &AnalyticsHandler{tracker: tracker, now: time.Now}
}

func (h *AnalyticsHandler) Test(ctx context.Context, _ *struct{}) (*AnalyticsTestResponse, error) {
	available := h.tracker.Enabled()

	h.tracker.TrackPageView(ctx, AnalyticsTestPath, baseEvent(ctx))

	resp := &AnalyticsTestResponse{}
	resp.Body.Success = true
	resp.Body.AnalyticsAvailable = available
	resp.Body.Timestamp = h.now().UTC()

	if available {
		resp.Body.Message = "Analytics forwarding available - test event written"
	} else {
		resp.Body.Message = "Analytics forwarding not configured in this environment"
	}

	return resp, nil
}
