package pokeapi

import (
	"context"
	"time"

	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/database"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
)

// Cache stores raw upstream response bodies keyed by request path. Lookups that
// miss or fail fall through to the network; a broken cache never fails a query.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// redisCache caches upstream bodies in Redis with a TTL.
type redisCache struct {
	rdb    *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisCache(rdb *database.RedisClient, ttl time.Duration, log logger.Logger) Cache {
	return &redisCache{
		rdb: rdb,
		ttl: ttl,
		logger: log.WithFields(map[string]interface{}{
			"component": "pokeapi-cache",
		}),
	}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, key)
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *redisCache) Set(ctx context.Context, key, value string) {
	if err := c.rdb.Set(ctx, key, value, c.ttl); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
