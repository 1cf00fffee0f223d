package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "https://emkc.org/api/v2/piston", cfg.PistonURL)
	assert.Equal(t, 15*time.Second, cfg.ExecutionTimeout)
	assert.Equal(t, 50, cfg.MaxUsernameLength)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.OutcomeCacheEnabled())
	assert.Empty(t, cfg.StaticDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.RedisEnabled())
	assert.False(t, cfg.OutcomeCacheEnabled())
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestLoad_OutcomeCacheOptIn(t *testing.T) {
	t.Setenv("OUTCOME_CACHE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.OutcomeCacheEnabled(), "needs a Redis address too")

	t.Setenv("REDIS_ADDR", "localhost:6379")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.OutcomeCacheEnabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "non numeric port", key: "PORT", val: "http"},
		{name: "bad piston url", key: "PISTON_URL", val: "not a url"},
		{name: "unknown log level", key: "LOG_LEVEL", val: "verbose"},
		{name: "zero username length", key: "MAX_USERNAME_LENGTH", val: "0"},
		{name: "unparsable duration", key: "EXECUTION_TIMEOUT", val: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
