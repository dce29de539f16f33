package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Night40050/support-copilot/internal/config"
)

const redisDialTimeout = 5 * time.Second

// ErrMissingRedisAddr is returned when the redis driver is selected without REDIS_ADDR.
var ErrMissingRedisAddr = errors.New("REDIS_ADDR is required for the redis store")

// OpenRedis connects the ticket store client. An unreachable server is an
// error since the store is required to serve requests.
func OpenRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingRedisAddr
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: redisDialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	logger.Info("redis ticket store ready", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return client, nil
}
