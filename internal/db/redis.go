package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/schoolmate-bg/schoolmate-api/internal/config"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// NewRedisClient connects to Redis when the cache is enabled. Returns nil
// when disabled or unreachable; callers treat a nil client as "no cache".
func NewRedisClient(cfg *config.Config) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).
			Msg("Redis unreachable, statistics cache disabled")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connected")
	return client
}
