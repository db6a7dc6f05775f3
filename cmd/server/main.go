package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/serroba/portal-api/internal/container"
	"github.com/serroba/portal-api/internal/ratelimit"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func registerPackages(injector *do.Injector, options *container.Options) {
	do.ProvideValue(injector, options)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.RateLimitPackage(injector)
	container.SearchPackage(injector)
	container.PublisherGroupPackage(injector)
	container.HTTPPackage(injector)
}

func logPolicies(logger *zap.Logger, policies *ratelimit.Policies) {
	for _, name := range policies.Names() {
		cfg := policies.Lookup(name)
		logger.Info("rate limit policy",
			zap.String("policy", name),
			zap.String("identifier", cfg.Identifier),
			zap.Int("limit", cfg.Limit),
			zap.Int("window_seconds", cfg.WindowSeconds),
		)
	}
}

func main() {
	// A missing .env file is fine; flags and the environment still apply.
	_ = godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := do.New()
		registerPackages(injector, options)

		logger := do.MustInvoke[*zap.Logger](injector)

		var server *http.Server

		hooks.OnStart(func() {
			policies, err := do.Invoke[*ratelimit.Policies](injector)
			if err != nil {
				logger.Fatal("invalid rate limit configuration", zap.Error(err))
			}

			logPolicies(logger, policies)

			router := do.MustInvoke[*chi.Mux](injector)
			// Building the API registers every route on the router.
			_ = do.MustInvoke[huma.API](injector)

			server = &http.Server{
				Addr:              net.JoinHostPort("", strconv.Itoa(options.Port)),
				Handler:           router,
				ReadHeaderTimeout: readHeaderTimeout,
			}

			logger.Info("portal api listening", zap.String("addr", server.Addr))

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("server shutdown error", zap.Error(err))
				}
			}

			if err := injector.Shutdown(); err != nil {
				logger.Error("service shutdown error", zap.Error(err))
			}

			logger.Info("shutdown complete")
			_ = logger.Sync()
		})
	})

	cli.Run()
}
