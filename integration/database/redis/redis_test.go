package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cancelkit/integration/database/redis"
)

func TestConnectEmptyURL(t *testing.T) {
	t.Parallel()

	client, err := redis.Connect(context.Background(), redis.Config{})
	require.Nil(t, client)
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
}

func TestConnectInvalidURL(t *testing.T) {
	t.Parallel()

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL: "not-a-redis-url",
	})
	require.Nil(t, client)
	assert.ErrorIs(t, err, redis.ErrFailedToParseConnString)
}

func TestConnectUnreachableServer(t *testing.T) {
	t.Parallel()

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: 100 * time.Millisecond,
	})
	require.Nil(t, client)
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)
}

func TestHealthcheckNilClient(t *testing.T) {
	t.Parallel()

	check := redis.Healthcheck(nil)
	assert.ErrorIs(t, check(context.Background()), redis.ErrRedisNotReady)
}
