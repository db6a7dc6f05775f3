package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/portal-api/internal/analytics"
	"github.com/serroba/portal-api/internal/handlers"
	"github.com/serroba/portal-api/internal/messaging"
	"github.com/serroba/portal-api/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProvider struct {
	results *search.Results
	err     error
	query   search.Query
}

func (m *mockProvider) Search(_ context.Context, query search.Query) (*search.Results, error) {
	m.query = query

	if m.err != nil {
		return nil, m.err
	}

	return m.results, nil
}

// capturePublish records every published analytics event.
func capturePublish(events *[]analytics.Event) messaging.Publish[analytics.Event] {
	return func(_ context.Context, event *analytics.Event) error {
		*events = append(*events, *event)

		return nil
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var statusErr huma.StatusError

	require.ErrorAs(t, err, &statusErr)

	return statusErr.GetStatus()
}

func TestSearchHandler_Search(t *testing.T) {
	t.Run("returns provider results", func(t *testing.T) {
		provider := search.NewCatalogProvider(search.DefaultCatalog())
		handler := handlers.NewSearchHandler(provider, analytics.NewTracker(nil, zap.NewNop()), zap.NewNop())

		resp, err := handler.Search(context.Background(), &handlers.SearchRequest{Q: "support"})

		require.NoError(t, err)
		assert.NotZero(t, resp.Body.Found)
		assert.Equal(t, "wrld-support", resp.Body.Hits[0].ID)
	})

	t.Run("missing query is a bad request", func(t *testing.T) {
		provider := &mockProvider{}
		handler := handlers.NewSearchHandler(provider, analytics.NewTracker(nil, zap.NewNop()), zap.NewNop())

		resp, err := handler.Search(context.Background(), &handlers.SearchRequest{Q: "   "})

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		assert.Contains(t, err.Error(), "Query parameter required")
	})

	t.Run("oversized query is a bad request", func(t *testing.T) {
		provider := &mockProvider{}
		handler := handlers.NewSearchHandler(provider, analytics.NewTracker(nil, zap.NewNop()), zap.NewNop())

		_, err := handler.Search(context.Background(), &handlers.SearchRequest{
			Q: strings.Repeat("a", handlers.MaxQueryLength+1),
		})

		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("parses comma separated filters", func(t *testing.T) {
		provider := &mockProvider{results: &search.Results{}}
		handler := handlers.NewSearchHandler(provider, analytics.NewTracker(nil, zap.NewNop()), zap.NewNop())

		_, err := handler.Search(context.Background(), &handlers.SearchRequest{
			Q:        "cloud",
			Category: "core, infrastructure",
			Status:   "operational",
			Tags:     "dns,,cdn,",
		})

		require.NoError(t, err)
		assert.Equal(t, "cloud", provider.query.Text)
		assert.Equal(t, []string{"core", "infrastructure"}, provider.query.Filters.Category)
		assert.Equal(t, []string{"operational"}, provider.query.Filters.Status)
		assert.Equal(t, []string{"dns", "cdn"}, provider.query.Filters.Tags)
	})

	t.Run("unavailable provider is 503", func(t *testing.T) {
		provider := &mockProvider{err: search.ErrUnavailable}
		handler := handlers.NewSearchHandler(provider, analytics.NewTracker(nil, zap.NewNop()), zap.NewNop())

		_, err := handler.Search(context.Background(), &handlers.SearchRequest{Q: "cloud"})

		assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))
	})

	t.Run("other provider errors are 500", func(t *testing.T) {
		provider := &mockProvider{err: errors.New("boom")}
		handler := handlers.NewSearchHandler(provider, analytics.NewTracker(nil, zap.NewNop()), zap.NewNop())

		_, err := handler.Search(context.Background(), &handlers.SearchRequest{Q: "cloud"})

		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})

	t.Run("tracks the search with request metadata", func(t *testing.T) {
		var events []analytics.Event

		provider := &mockProvider{results: &search.Results{Found: 7, CacheHit: true}}
		tracker := analytics.NewTracker(capturePublish(&events), zap.NewNop())
		handler := handlers.NewSearchHandler(provider, tracker, zap.NewNop())

		ctx := handlers.ContextWithRequestMeta(context.Background(), handlers.RequestMeta{
			RequestID: "req-1",
			ClientIP:  "1.2.3.4",
			UserAgent: "TestAgent/1.0",
		})

		_, err := handler.Search(ctx, &handlers.SearchRequest{Q: "cloud"})

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, analytics.EventSearchQuery, events[0].Type)
		assert.Equal(t, 7, events[0].ResultsCount)
		assert.True(t, events[0].CacheHit)
		assert.Equal(t, "req-1", events[0].RequestID)
		assert.Equal(t, "1.2.3.4", events[0].ClientIP)
	})

	t.Run("failed searches are not tracked", func(t *testing.T) {
		var events []analytics.Event

		provider := &mockProvider{err: search.ErrUnavailable}
		tracker := analytics.NewTracker(capturePublish(&events), zap.NewNop())
		handler := handlers.NewSearchHandler(provider, tracker, zap.NewNop())

		_, _ = handler.Search(context.Background(), &handlers.SearchRequest{Q: "cloud"})

		assert.Empty(t, events)
	})
}
