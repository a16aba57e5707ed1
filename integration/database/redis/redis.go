package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrEmptyConnectionURL is returned when the config carries no URL.
	ErrEmptyConnectionURL = errors.New("redis connection URL is empty")
	// ErrFailedToParseConnString is returned when the URL cannot be parsed.
	ErrFailedToParseConnString = errors.New("failed to parse redis connection URL")
	// ErrRedisNotReady is returned when the server cannot be reached
	// after all retry attempts.
	ErrRedisNotReady = errors.New("redis is not ready")
)

// Connect establishes a Redis client and verifies it with a ping.
// Connection attempts are retried cfg.RetryAttempts times with
// cfg.RetryInterval between attempts; the context cancels the wait.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}
	if cfg.ConnectTimeout > 0 {
		opts.DialTimeout = cfg.ConnectTimeout
	}

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = time.Second
	}

	client := redis.NewClient(opts)

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				_ = client.Close()
				return nil, errors.Join(ErrRedisNotReady, context.Cause(ctx))
			case <-time.After(interval):
			}
		}

		if err := client.Ping(ctx).Err(); err != nil {
			lastErr = err
			continue
		}
		return client, nil
	}

	_ = client.Close()
	return nil, errors.Join(ErrRedisNotReady, fmt.Errorf("after %d attempts: %w", attempts, lastErr))
}

// Healthcheck returns a probe function suitable for readiness checks.
func Healthcheck(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrRedisNotReady
		}
		return client.Ping(ctx).Err()
	}
}
