package handlers

import (
	"time"

	"github.com/serroba/portal-api/internal/search"
)

// SearchRequest is the request for searching portal sites.
type SearchRequest struct {
	Q        string `doc:"Search text"                        example:"cloud"          query:"q"`
	Category string `doc:"Comma-separated categories to match" example:"infrastructure" query:"category"`
	Status   string `doc:"Comma-separated statuses to match"   example:"operational"    query:"status"`
	Tags     string `doc:"Comma-separated tags, any may match" example:"dns,cdn"        query:"tags"`
}

// SearchResponse is the response for a search.
type SearchResponse struct {
	Body search.Results
}

// AnalyticsTestResponse reports whether analytics forwarding is wired.
type AnalyticsTestResponse struct {
	Body struct {
		Success            bool      `doc:"Whether the request was handled"          json:"success"`
		AnalyticsAvailable bool      `doc:"Whether events are forwarded to a broker" json:"analyticsAvailable"`
		Timestamp          time.Time `doc:"Server time of the test"                  json:"timestamp"`
		Message            string    `doc:"Human readable outcome"                   json:"message"`
	}
}
