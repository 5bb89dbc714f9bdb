package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/streamkit/core/config"
)

// Each test declares its own config type: the cache is keyed by type, so
// sharing one across tests would leak state between them. t.Setenv forbids
// t.Parallel, which keeps env mutations race-free here.

func TestLoad(t *testing.T) {
	t.Run("reads environment variables", func(t *testing.T) {
		type serverConfig struct {
			Host string `env:"TEST_CONFIG_HOST" envDefault:"localhost"`
			Port int    `env:"TEST_CONFIG_PORT" envDefault:"8080"`
		}

		t.Setenv("TEST_CONFIG_HOST", "0.0.0.0")
		t.Setenv("TEST_CONFIG_PORT", "9090")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "0.0.0.0", cfg.Host)
		assert.Equal(t, 9090, cfg.Port)
	})

	t.Run("applies defaults", func(t *testing.T) {
		type timeoutConfig struct {
			Timeout time.Duration `env:"TEST_CONFIG_TIMEOUT" envDefault:"15s"`
			Retries int           `env:"TEST_CONFIG_RETRIES" envDefault:"3"`
		}

		var cfg timeoutConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 15*time.Second, cfg.Timeout)
		assert.Equal(t, 3, cfg.Retries)
	})

	t.Run("required variable missing", func(t *testing.T) {
		type secretConfig struct {
			Token string `env:"TEST_CONFIG_MISSING_TOKEN,required"`
		}

		var cfg secretConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TEST_CONFIG_MISSING_TOKEN")
	})

	t.Run("caches per type", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_CONFIG_CACHED" envDefault:"unset"`
		}

		t.Setenv("TEST_CONFIG_CACHED", "first")
		var a cachedConfig
		require.NoError(t, config.Load(&a))
		require.Equal(t, "first", a.Value)

		t.Setenv("TEST_CONFIG_CACHED", "second")
		var b cachedConfig
		require.NoError(t, config.Load(&b))
		assert.Equal(t, "first", b.Value, "second load must be served from cache")
	})

	t.Run("nil pointer", func(t *testing.T) {
		type anyConfig struct{}

		var cfg *anyConfig
		require.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("loads valid config", func(t *testing.T) {
		type validConfig struct {
			Name string `env:"TEST_CONFIG_MUST_NAME" envDefault:"streamkit"`
		}

		var cfg validConfig
		require.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "streamkit", cfg.Name)
	})

	t.Run("panics on failure", func(t *testing.T) {
		type brokenConfig struct {
			Token string `env:"TEST_CONFIG_MUST_TOKEN,required"`
		}

		var cfg brokenConfig
		require.Panics(t, func() { config.MustLoad(&cfg) })
	})
}
