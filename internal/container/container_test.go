package container_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/portal-api/internal/analytics"
	"github.com/serroba/portal-api/internal/container"
	"github.com/serroba/portal-api/internal/messaging"
	"github.com/serroba/portal-api/internal/ratelimit"
	"github.com/serroba/portal-api/internal/search"
	"github.com/serroba/portal-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() *container.Options {
	return &container.Options{
		LogFormat:          "console",
		ClientIPHeader:     "CF-Connecting-IP",
		SearchLimit:        2,
		SearchWindow:       60,
		GeneralLimit:       5,
		GeneralWindow:      60,
		SearchCacheSeconds: 30,
	}
}

func newInjector(opts *container.Options) *do.Injector {
	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.RateLimitPackage(injector)
	container.SearchPackage(injector)
	container.PublisherGroupPackage(injector)
	container.HTTPPackage(injector)

	return injector
}

func TestOptions_Policies(t *testing.T) {
	t.Run("builds both policies from options", func(t *testing.T) {
		policies, err := defaultOptions().Policies()

		require.NoError(t, err)

		assert.Equal(t, []string{ratelimit.PolicyGeneral, ratelimit.PolicySearch}, policies.Names())

		cfg := policies.Lookup(ratelimit.PolicySearch)
		assert.Equal(t, 2, cfg.Limit)
		assert.Equal(t, ratelimit.DefaultSearch.Identifier, cfg.Identifier)
		assert.Equal(t, 5, policies.Lookup(ratelimit.PolicyGeneral).Limit)
	})

	t.Run("rejects a zero window", func(t *testing.T) {
		opts := defaultOptions()
		opts.SearchWindow = 0

		_, err := opts.Policies()

		assert.ErrorIs(t, err, ratelimit.ErrInvalidConfig)
	})
}

func TestPackages_WithoutBackends(t *testing.T) {
	injector := newInjector(defaultOptions())
	t.Cleanup(func() { _ = injector.Shutdown() })

	t.Run("falls back to in-process counters", func(t *testing.T) {
		s := do.MustInvoke[ratelimit.Store](injector)

		assert.IsType(t, &store.CounterMemoryStore{}, s)
	})

	t.Run("searches the built-in catalog", func(t *testing.T) {
		provider := do.MustInvoke[search.Provider](injector)

		assert.IsType(t, &search.CatalogProvider{}, provider)
	})

	t.Run("disables analytics forwarding", func(t *testing.T) {
		tracker := do.MustInvoke[*analytics.Tracker](injector)

		assert.False(t, tracker.Enabled())
	})

	t.Run("serves rate limited search", func(t *testing.T) {
		router := do.MustInvoke[*chi.Mux](injector)
		_ = do.MustInvoke[huma.API](injector)

		codes := make([]int, 0, 3)

		for range 3 {
			req := httptest.NewRequest(http.MethodGet, "/api/search?q=cloud", nil)
			req.Header.Set("CF-Connecting-IP", "192.0.2.10")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			codes = append(codes, w.Code)
			assert.Equal(t, "2", w.Header().Get(ratelimit.HeaderLimit))
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("health reports ok without backends", func(t *testing.T) {
		router := do.MustInvoke[*chi.Mux](injector)
		_ = do.MustInvoke[huma.API](injector)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	})
}

func TestConsumerGroupPackage_RequiresRedis(t *testing.T) {
	injector := do.New()
	do.ProvideValue(injector, defaultOptions())
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.ConsumerGroupPackage(injector)

	_, err := do.Invoke[*messaging.ConsumerGroup](injector)

	assert.Error(t, err)
}
