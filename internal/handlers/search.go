package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/portal-api/internal/analytics"
	"github.com/serroba/portal-api/internal/search"
	"go.uber.org/zap"
)

// MaxQueryLength bounds the search text accepted from clients.
const MaxQueryLength = 256

// SearchHandler serves site searches.
type SearchHandler struct {
	provider search.Provider
	tracker  *analytics.Tracker
	logger   *zap.Logger
	now      func() time.Time
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(provider search.Provider, tracker *analytics.Tracker, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		provider: provider,
		tracker:  tracker,
		logger:   logger,
		now:      time.Now,
	}
}

func (h *SearchHandler) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	text := strings.TrimSpace(req.Q)
	if text == "" {
		return nil, huma.Error400BadRequest("Query parameter required")
	}

	if len(text) > MaxQueryLength {
		return nil, huma.Error400BadRequest("Query parameter too long")
	}

	query := search.Query{
		Text: text,
		Filters: search.Filters{
			Category: splitList(req.Category),
			Status:   splitList(req.Status),
			Tags:     splitList(req.Tags),
		},
	}

	started := h.now()

	results, err := h.provider.Search(ctx, query)
	if err != nil {
		if errors.Is(err, search.ErrUnavailable) {
			h.logger.Warn("search backend unavailable", zap.Error(err))

			return nil, huma.Error503ServiceUnavailable("Search service unavailable")
		}

		h.logger.Error("search failed", zap.String("query", text), zap.Error(err))

		return nil, huma.Error500InternalServerError("Internal server error")
	}

	h.tracker.TrackSearch(ctx, analytics.SearchOutcome{
		Query:        text,
		ResultsCount: results.Found,
		Latency:      h.now().Sub(started),
		CacheHit:     results.CacheHit,
		Filters: analytics.SearchFilters{
			Category: query.Filters.Category,
			Status:   query.Filters.Status,
			Tags:     query.Filters.Tags,
		},
	}, baseEvent(ctx))

	return &SearchResponse{Body: *results}, nil
}

// splitList parses a comma-separated query value, dropping empty items.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string

	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
