package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/serroba/portal-api/internal/container"
	"github.com/serroba/portal-api/internal/messaging"
	"go.uber.org/zap"
)

// The analytics consumer reads portal events from the Redis stream written
// by the API server.
func main() {
	_ = godotenv.Load()

	injector := do.New()
	do.ProvideValue(injector, &container.Options{
		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		LogFormat:     envOr("LOG_FORMAT", "console"),
		ConsumerGroup: envOr("CONSUMER_GROUP", "portal-analytics"),
	})
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.ConsumerGroupPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, err := do.Invoke[*messaging.ConsumerGroup](injector)
	if err != nil {
		logger.Fatal("failed to build consumer group", zap.Error(err))
	}

	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start consumer group", zap.Error(err))
	}

	<-ctx.Done()

	logger.Info("shutting down", zap.Strings("topics", group.Topics()))

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}
