// Package redis opens the go-redis client shared by the cache and token revocation.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"admin_backend/internal/platform/config"
)

const defaultTimeout = 3 * time.Second

// NewRedisClient connects to Redis and pings it once. On failure the client
// is closed and the error returned, so callers can run without Redis.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	addr := cfg.Addr()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("redis connection failed", zap.String("address", addr), zap.Error(err))
		_ = rdb.Close()
		return nil, err
	}

	logger.Info("redis connection successful", zap.String("address", addr), zap.Int("db", cfg.DB))
	return rdb, nil
}
