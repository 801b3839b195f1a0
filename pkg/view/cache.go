package view

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores rendered view fragments.
type Cache interface {
	// Get returns the cached fragment for key, a hit flag, and any error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a rendered fragment under key.
	Set(ctx context.Context, key string, body []byte) error
}

// RedisCache is a Cache backed by Redis with a fixed TTL per fragment.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// RedisCacheOption configures a RedisCache.
type RedisCacheOption func(*RedisCache)

// WithTTL sets the fragment lifetime. Default: 5 minutes.
func WithTTL(ttl time.Duration) RedisCacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the Redis key prefix. Default: "view:".
func WithKeyPrefix(prefix string) RedisCacheOption {
	return func(c *RedisCache) {
		c.prefix = prefix
	}
}

// NewRedisCache creates a Redis-backed fragment cache.
func NewRedisCache(client redis.UniversalClient, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{
		client: client,
		ttl:    5 * time.Minute,
		prefix: "view:",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return body, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, body []byte) error {
	return c.client.Set(ctx, c.prefix+key, body, c.ttl).Err()
}
