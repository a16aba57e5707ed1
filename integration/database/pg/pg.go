package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrEmptyConnectionString is returned when the config carries no DSN.
	ErrEmptyConnectionString = errors.New("postgres connection string is empty")
	// ErrFailedToParseConnString is returned when the DSN cannot be parsed.
	ErrFailedToParseConnString = errors.New("failed to parse postgres connection string")
	// ErrFailedToOpenDB is returned when the pool cannot be established
	// after all retry attempts.
	ErrFailedToOpenDB = errors.New("failed to open postgres connection pool")
)

// Connect establishes a pgx connection pool and verifies it with a ping.
// Connection attempts are retried cfg.RetryAttempts times with
// cfg.RetryInterval between attempts; the context cancels the wait.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if cfg.ConnectionString == "" {
		return nil, ErrEmptyConnectionString
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	poolCfg.MaxConns = cfg.MaxOpenConns
	poolCfg.MinConns = cfg.MinOpenConns
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = time.Second
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrFailedToOpenDB, context.Cause(ctx))
			case <-time.After(interval):
			}
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			lastErr = err
			continue
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			lastErr = err
			continue
		}
		return pool, nil
	}

	return nil, errors.Join(ErrFailedToOpenDB, fmt.Errorf("after %d attempts: %w", attempts, lastErr))
}

// Healthcheck returns a probe function suitable for readiness checks.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if pool == nil {
			return ErrFailedToOpenDB
		}
		return pool.Ping(ctx)
	}
}
