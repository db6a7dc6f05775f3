package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/portal-api/internal/analytics"
	analyticsstore "github.com/serroba/portal-api/internal/analytics/store"
	"github.com/serroba/portal-api/internal/handlers"
	"github.com/serroba/portal-api/internal/health"
	"github.com/serroba/portal-api/internal/messaging"
	"github.com/serroba/portal-api/internal/middleware"
	"github.com/serroba/portal-api/internal/ratelimit"
	"github.com/serroba/portal-api/internal/search"
	"github.com/serroba/portal-api/internal/store"
	"go.uber.org/zap"
)

const requestIDLength = 21

// Redis holds the shared Redis client. Client is nil when Redis is not configured.
type Redis struct {
	Client *redis.Client
}

// Shutdown closes the client.
func (r *Redis) Shutdown() error {
	if r.Client == nil {
		return nil
	}

	return r.Client.Close()
}

// Postgres holds the shared connection pool. Pool is nil when PostgreSQL is not configured.
type Postgres struct {
	Pool *pgxpool.Pool
}

// Shutdown closes the pool.
func (p *Postgres) Shutdown() error {
	if p.Pool != nil {
		p.Pool.Close()
	}

	return nil
}

// LoggerPackage provides the structured logger.
func LoggerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "console" {
			return zap.NewDevelopment()
		}

		return zap.NewProduction()
	})
}

// RedisPackage provides the Redis client when an address is configured.
func RedisPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*Redis, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.RedisAddr == "" {
			return &Redis{}, nil
		}

		return &Redis{Client: redis.NewClient(&redis.Options{Addr: opts.RedisAddr})}, nil
	})
}

// PostgresPackage provides the PostgreSQL pool when a URL is configured.
func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*Postgres, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.PostgresURL == "" {
			return &Postgres{}, nil
		}

		pool, err := pgxpool.New(context.Background(), opts.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		return &Postgres{Pool: pool}, nil
	})
}

// RateLimitPackage provides the policies, the counter store and the limiter.
// The store is Redis when configured, otherwise an in-process map whose
// quotas are per instance.
func RateLimitPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*ratelimit.Policies, error) {
		return do.MustInvoke[*Options](i).Policies()
	})

	do.Provide(i, func(i *do.Injector) (ratelimit.Store, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		conn := do.MustInvoke[*Redis](i)

		if conn.Client != nil {
			logger.Info("rate limit counters stored in redis")

			return store.NewRedisCounterStore(conn.Client), nil
		}

		logger.Warn("rate limit counters kept in process memory; quotas are enforced per instance")

		return store.NewCounterMemoryStore(), nil
	})

	do.Provide(i, func(i *do.Injector) (*ratelimit.Limiter, error) {
		return ratelimit.NewLimiter(
			do.MustInvoke[ratelimit.Store](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// SearchPackage provides the search provider: the PostgreSQL index when
// configured, otherwise the built-in catalog, cached in Redis when available.
func SearchPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (search.Provider, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		pg := do.MustInvoke[*Postgres](i)
		conn := do.MustInvoke[*Redis](i)

		var provider search.Provider = search.NewCatalogProvider(search.DefaultCatalog())

		if pg.Pool != nil {
			index := store.NewPostgresSiteIndex(pg.Pool)

			if err := seedIndex(context.Background(), index, search.DefaultCatalog()); err != nil {
				logger.Error("failed to seed site index", zap.Error(err))
			}

			provider = index
		}

		if conn.Client != nil && opts.SearchCacheSeconds > 0 {
			ttl := time.Duration(opts.SearchCacheSeconds) * time.Second
			provider = store.NewSearchCache(provider, conn.Client, ttl, logger)
		}

		return provider, nil
	})
}

func seedIndex(ctx context.Context, index *store.PostgresSiteIndex, sites []search.Site) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := index.EnsureSchema(ctx); err != nil {
		return err
	}

	for _, site := range sites {
		if err := index.Index(ctx, site); err != nil {
			return fmt.Errorf("index %s: %w", site.ID, err)
		}
	}

	return nil
}

// PublisherGroupPackage provides the analytics tracker. Events go to a Redis
// stream when Redis is configured; otherwise tracking is disabled.
func PublisherGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		conn := do.MustInvoke[*Redis](i)
		if conn.Client == nil {
			return nil, nil
		}

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: conn.Client},
			messaging.NewZapLogger(do.MustInvoke[*zap.Logger](i)),
		)
		if err != nil {
			return nil, fmt.Errorf("create stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(i, func(i *do.Injector) (*analytics.Tracker, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		group := do.MustInvoke[*messaging.PublisherGroup](i)
		if group == nil {
			logger.Info("analytics forwarding disabled")

			return analytics.NewTracker(nil, logger), nil
		}

		publish := messaging.NewPublishFunc[analytics.Event](group.Publisher(), analytics.TopicEvents)

		return analytics.NewTracker(publish, logger), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group.
func ConsumerGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		conn := do.MustInvoke[*Redis](i)
		if conn.Client == nil {
			return nil, fmt.Errorf("analytics consumer requires a redis address")
		}

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        conn.Client,
				ConsumerGroup: opts.ConsumerGroup,
			},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create stream subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			analytics.TopicEvents,
			analytics.NewEventHandler(analyticsstore.NewNoop(logger)),
			logger,
		))

		return group, nil
	})
}

// HTTPPackage provides the router and the API with every route registered.
func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		tracker := do.MustInvoke[*analytics.Tracker](i)

		newID, err := nanoid.Standard(requestIDLength)
		if err != nil {
			return nil, err
		}

		api := humachi.New(router, huma.DefaultConfig("Portal API", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(newID, opts.ClientIPHeader))
		api.UseMiddleware(middleware.RateLimiter(
			do.MustInvoke[*ratelimit.Limiter](i),
			do.MustInvoke[*ratelimit.Policies](i),
			opts.ClientIPHeader,
			logger,
		))

		handlers.RegisterRoutes(api,
			handlers.NewSearchHandler(do.MustInvoke[search.Provider](i), tracker, logger),
			handlers.NewAnalyticsHandler(tracker),
		)
		health.RegisterRoutes(api, health.NewHandler(healthCheckers(i)))

		return api, nil
	})
}

func healthCheckers(i *do.Injector) map[string]health.Checker {
	checkers := make(map[string]health.Checker)

	if conn := do.MustInvoke[*Redis](i); conn.Client != nil {
		checkers["redis"] = health.NewRedisChecker(conn.Client)
	}

	if pg := do.MustInvoke[*Postgres](i); pg.Pool != nil {
		checkers["postgres"] = health.NewPostgresChecker(pg.Pool)
	}

	return checkers
}
