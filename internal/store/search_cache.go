package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/portal-api/internal/search"
	"go.uber.org/zap"
)

// SearchCache wraps a search.Provider with a Redis read-through cache.
// Cache failures fall through to the wrapped provider.
type SearchCache struct {
	provider search.Provider
	client   *redis.Client
	logger   *zap.Logger
	prefix   string
	ttl      time.Duration
}

// NewSearchCache creates a new Redis-cached search provider decorator.
func NewSearchCache(
	provider search.Provider, client *redis.Client, ttl time.Duration, logger *zap.Logger,
) *SearchCache {
	return &SearchCache{
		provider: provider,
		client:   client,
		logger:   logger,
		prefix:   "search:",
		ttl:      ttl,
	}
}

// Search returns cached results when present, otherwise queries the provider
// and caches its answer.
func (c *SearchCache) Search(ctx context.Context, query search.Query) (*search.Results, error) {
	key := c.Key(query)

	if results, ok := c.getFromCache(ctx, key); ok {
		return results, nil
	}

	results, err := c.provider.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	c.cacheResults(ctx, key, results)

	return results, nil
}

// Key returns the cache key for query. Equivalent queries share a key.
func (c *SearchCache) Key(query search.Query) string {
	payload, _ := json.Marshal(query.Normalize())
	sum := sha256.Sum256(payload)

	return c.prefix + hex.EncodeToString(sum[:])
}

func (c *SearchCache) getFromCache(ctx context.Context, key string) (*search.Results, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var results search.Results
	if err := json.Unmarshal(raw, &results); err != nil {
		c.logger.Debug("discarding undecodable search cache entry", zap.String("key", key), zap.Error(err))

		return nil, false
	}

	results.CacheHit = true

	return &results, true
}

func (c *SearchCache) cacheResults(ctx context.Context, key string, results *search.Results) {
	payload, err := json.Marshal(results)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Debug("failed to cache search results", zap.String("key", key), zap.Error(err))
	}
}

// Shutdown is a no-op for SearchCache (client managed externally).
func (c *SearchCache) Shutdown() error {
	return nil
}

// Compile-time check.
var _ search.Provider = (*SearchCache)(nil)
