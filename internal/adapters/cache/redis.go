package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTTL bounds how long cached provider scores live in Redis.
// Scores are recomputable, so expiry only costs a refetch.
const defaultTTL = 24 * time.Hour

// RedisCache implements Cache on a Redis instance, for deployments where
// several service replicas should share one provider score cache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption applies a configuration option to the RedisCache.
type RedisOption func(*RedisCache)

// WithTTL sets the expiry applied to cached values.
func WithTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewRedisCache creates a Redis-backed cache talking to addr.
func NewRedisCache(addr string, opts ...RedisOption) *RedisCache {
	c := &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    defaultTTL,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the cached value for key. Any Redis error is treated as a
// miss; the caller recomputes.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Size is not cheaply available on Redis; reports -1.
func (c *RedisCache) Size() int64 {
	return -1
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}
