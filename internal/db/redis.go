/**
 * @description
 * Redis connection manager using go-redis.
 * Used by the API to cache recent live-prize rows. When no REDIS_URL is
 * configured, an embedded miniredis instance backs the client so the API can
 * run without external infrastructure.
 *
 * @dependencies
 * - github.com/redis/go-redis/v9
 * - github.com/alicebob/miniredis/v2
 */

package db

import (
	"context"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/jackpotwatch/backend/internal/config"
	"github.com/jackpotwatch/backend/internal/logger"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis initializes the Redis client from REDIS_URL
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}

	if opt.ReadTimeout == 0 {
		opt.ReadTimeout = 5 * time.Second
	}
	if opt.WriteTimeout == 0 {
		opt.WriteTimeout = 5 * time.Second
	}
	if opt.DialTimeout == 0 {
		opt.DialTimeout = 5 * time.Second
	}
	if opt.MaxRetries == 0 {
		opt.MaxRetries = 2
	}

	client := redis.NewClient(opt)

	// Ping to verify connection
	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	logger.Info("✅ Connected to Redis")
	return client, nil
}

// ConnectCache returns a cache client, preferring a real Redis when
// configured and falling back to an embedded miniredis otherwise. The
// returned cleanup func stops the embedded instance (no-op for real Redis).
func ConnectCache(cfg *config.Config) (*redis.Client, func(), error) {
	if cfg.Redis.URL != "" {
		client, err := ConnectRedis(cfg)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	}

	mr, err := miniredis.Run()
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger.Info("REDIS_URL not set, using embedded in-memory cache")
	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}
	return client, cleanup, nil
}
