package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskforge/rewards-api/internal/infrastructure/config"
)

const (
	dialTimeout = 5 * time.Second
	opTimeout   = 3 * time.Second
)

// clientOptions maps service configuration onto go-redis options. Operation
// timeouts are bounded so a stalled Redis degrades shared-token login instead
// of hanging requests.
func clientOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	}
}

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(clientOptions(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
