package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/portal-api/internal/ratelimit"
)

// RegisterRoutes registers the portal API routes with per-endpoint rate limit configuration.
func RegisterRoutes(api huma.API, searchHandler *SearchHandler, analyticsHandler *AnalyticsHandler) {
	// GET /api/search - Full-text site search
	// Guarded by the stricter search policy
	huma.Register(api, huma.Operation{
		OperationID: "search-sites",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Search portal sites",
		Description: "Searches portal sites by text with optional category, status and tag filters.",
		Tags:        []string{"Search"},
		Metadata:    ratelimit.Metadata(ratelimit.EndpointConfig{Policy: ratelimit.PolicySearch}),
		Errors:      []int{http.StatusBadRequest, http.StatusTooManyRequests, http.StatusServiceUnavailable},
	}, searchHandler.Search)

	// GET /api/analytics-test - Analytics forwarding probe
	huma.Register(api, huma.Operation{
		OperationID: "analytics-test",
		Method:      http.MethodGet,
		Path:        AnalyticsTestPath,
		Summary:     "Test analytics forwarding",
		Description: "Writes a page_view event and reports whether analytics forwarding is configured.",
		Tags:        []string{"Analytics"},
		Metadata:    ratelimit.Metadata(ratelimit.EndpointConfig{Policy: ratelimit.PolicyGeneral}),
		Errors:      []int{http.StatusTooManyRequests},
	}, analyticsHandler.Test)
}
