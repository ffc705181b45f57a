package utils

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"miniblog/config"
)

// NewRedis builds a Redis client from configuration. Returns nil when no
// Redis host is configured; every caller treats a nil client as "caching
// disabled".
func NewRedis(cfg config.AppConfig) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	// Ping to validate; a failure is logged but not fatal, cache paths fall
	// back to database reads.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil && Sugar != nil {
		Sugar.Warnf("redis ping failed, caching degraded: %v", err)
	}
	return client
}
