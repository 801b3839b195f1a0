package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Shutdown returns a function that closes the Redis client.
// Use with strut.ShutdownHook(redis.Shutdown(client)).
func Shutdown(client redis.UniversalClient) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Close()
	}
}
