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

	assert.Equal(t, "minerva", cfg.App.Name)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, 0.7, cfg.AI.Temperature)
	assert.Equal(t, 4096, cfg.AI.MaxTokens)
	assert.Equal(t, 120*time.Second, cfg.AI.RequestTimeout)
	assert.Equal(t, 60, cfg.AI.ReqPerMinute)
	assert.Equal(t, 3*time.Minute, cfg.MarketData.CacheTTL)
	assert.False(t, cfg.MarketData.CacheEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AI_MODEL", "gpt-4o-mini")
	t.Setenv("AI_MAX_TOKENS", "2048")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, 2048, cfg.AI.MaxTokens)
	assert.Equal(t, "cache.internal:6380", cfg.Redis.Addr())
}
