// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// InitRedis connects to Redis. The cache is best-effort: if the server is
// unreachable the application runs without it.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("redis unavailable, continuing without cache",
			slog.String("error", err.Error()))
		Client = nil
	} else {
		middleware.Logger.Info("redis connected")
	}
}

func GetClient() *redis.Client {
	return Client
}

// Close shuts down the Redis connection if one was established.
func Close() {
	if Client != nil {
		_ = Client.Close()
	}
}
