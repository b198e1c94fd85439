// Package cache provides the Redis serving cache in front of the active
// deployment lookup. The cache is advisory: every failure is logged and
// downgraded to a miss or no-op, never surfaced to the caller. The store
// of record is always PostgreSQL.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/promptops-dev/promptops/internal/config"
	"github.com/promptops-dev/promptops/pkg/logger"
)

var Module = fx.Module("cache",
	fx.Provide(NewCache),
)

const keyPrefix = "promptops:prompt"

// Cache wraps a Redis client with miss-on-failure semantics
type Cache struct {
	client    *redis.Client
	available bool
	opTimeout time.Duration
	log       *slog.Logger
}

// NewCache connects to Redis. A failed connection is not fatal: the cache
// marks itself unavailable and the service runs store-only.
func NewCache(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) *Cache {
	log = log.With(logger.Scope("cache"))

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Cache.Addr(),
		Password:    cfg.Cache.Password,
		DB:          cfg.Cache.DB,
		DialTimeout: cfg.Cache.ConnectTimeout,
		ReadTimeout: cfg.Cache.OpTimeout,
	})

	c := &Cache{
		client:    client,
		opTimeout: cfg.Cache.OpTimeout,
		log:       log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Cache.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis not available, serving without cache", logger.Error(err))
	} else {
		c.available = true
		log.Info("redis cache connected", slog.String("addr", cfg.Cache.Addr()))
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return c
}

// Available reports whether the cache connection was established
func (c *Cache) Available() bool {
	return c.available
}

// Ping checks connectivity for health reporting
func (c *Cache) Ping(ctx context.Context) error {
	if !c.available {
		return fmt.Errorf("cache not connected")
	}
	return c.client.Ping(ctx).Err()
}

// Key builds the cache key for a prompt lookup. An empty name maps to
// the "default" slot.
func Key(environment, name string) string {
	if name == "" {
		name = "default"
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, environment, name)
}

// envPattern matches every key scoped to an environment
func envPattern(environment string) string {
	return fmt.Sprintf("%s:%s:*", keyPrefix, environment)
}

// Lookup fetches a cached snapshot. Returns (nil, false) on miss, on any
// error, or when the cache is unavailable.
func (c *Cache) Lookup(ctx context.Context, environment, name string) ([]byte, bool) {
	if !c.available {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, Key(environment, name)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("cache read failed", logger.Error(err))
		return nil, false
	}
	return data, true
}

// Populate stores a serialized snapshot with an expiry. Called only by the
// read path after a miss; deploys never write through.
func (c *Cache) Populate(ctx context.Context, environment, name string, data []byte, ttl time.Duration) {
	if !c.available {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, Key(environment, name), data, ttl).Err(); err != nil {
		c.log.Warn("cache write failed", logger.Error(err))
	}
}

// Invalidate deletes every cached entry scoped to the environment. Called
// after each committed deploy or rollback. Losing an invalidation is
// tolerated: the TTL bounds how long a stale entry can survive.
func (c *Cache) Invalidate(ctx context.Context, environment string) {
	if !c.available {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	var keys []string
	iter := c.client.Scan(ctx, 0, envPattern(environment), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("cache scan failed", logger.Error(err))
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidation failed", logger.Error(err))
		return
	}

	c.log.Debug("cache invalidated",
		slog.String("environment", environment),
		slog.Int("keys", len(keys)),
	)
}
