package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cassiomorais/corebank/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 5 * time.Second
	opTimeout    = 3 * time.Second
	poolSize     = 10
	minIdleConns = 5
)

// NewClient connects to Redis, retrying with a linear backoff until the
// server answers a ping or the configured attempts run out.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
		MaxRetries:   3,
	})

	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = 5
	}
	delay := cfg.ConnectRetryDelay
	if delay <= 0 {
		delay = time.Second
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		if i < attempts {
			time.Sleep(time.Duration(i) * delay)
		}
	}

	client.Close()
	return nil, fmt.Errorf("connect to redis after %d attempts: %w", attempts, err)
}
