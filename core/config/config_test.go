package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cancelkit/core/config"
)

type serverConfig struct {
	Port    int           `env:"TEST_SERVER_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"TEST_SERVER_TIMEOUT" envDefault:"30s"`
}

type requiredConfig struct {
	Token string `env:"TEST_REQUIRED_TOKEN,required"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadCachesPerType(t *testing.T) {
	var first serverConfig
	require.NoError(t, config.Load(&first))

	// Changing the environment after the first load must not matter.
	t.Setenv("TEST_SERVER_PORT", "9999")

	var second serverConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
}

func TestLoadRequiredMissing(t *testing.T) {
	var cfg requiredConfig
	assert.Error(t, config.Load(&cfg))
}

func TestLoadNilTarget(t *testing.T) {
	var cfg *serverConfig
	assert.Error(t, config.Load(cfg))
}
