package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtinspect/core/config"
)

type cachedConfig struct {
	Limit int `env:"CONFIG_TEST_CACHED_LIMIT" envDefault:"100"`
}

type parsedConfig struct {
	Leeway  time.Duration `env:"CONFIG_TEST_LEEWAY" envDefault:"0s"`
	Allow   bool          `env:"CONFIG_TEST_ALLOW_NONE"`
	Origins []string      `env:"CONFIG_TEST_ORIGINS" envSeparator:"," envDefault:"*"`
}

type requiredConfig struct {
	URL string `env:"CONFIG_TEST_REQUIRED_URL,required"`
}

// Tests here mutate the environment, so they do not run in parallel.

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("CONFIG_TEST_CACHED_LIMIT", "7")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, 7, first.Limit)

	t.Setenv("CONFIG_TEST_CACHED_LIMIT", "9")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, 7, second.Limit)
}

func TestParse(t *testing.T) {
	t.Setenv("CONFIG_TEST_LEEWAY", "30s")
	t.Setenv("CONFIG_TEST_ALLOW_NONE", "true")
	t.Setenv("CONFIG_TEST_ORIGINS", "https://a.example,https://b.example")

	var cfg parsedConfig
	require.NoError(t, config.Parse(&cfg))
	assert.Equal(t, 30*time.Second, cfg.Leeway)
	assert.True(t, cfg.Allow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
}

func TestLoadErrors(t *testing.T) {
	var cfg requiredConfig
	assert.Error(t, config.Load(&cfg))
	assert.Panics(t, func() { config.MustLoad(&cfg) })

	var notStruct int
	assert.ErrorIs(t, config.Load(&notStruct), config.ErrNotPointer)
	assert.ErrorIs(t, config.Load[cachedConfig](nil), config.ErrNotPointer)
}
