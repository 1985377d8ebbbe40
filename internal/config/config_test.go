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

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 300*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)

	assert.Empty(t, cfg.Extractor.APIKey)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Extractor.Model)
	assert.Equal(t, 120, cfg.Extractor.TimeoutSecs)
	assert.Equal(t, 8192, cfg.Extractor.MaxTokens)

	assert.Equal(t, 50, cfg.Batch.MaxDocuments)
	assert.Equal(t, int64(10), cfg.Batch.MaxFileSizeMB)
	assert.Equal(t, 500, cfg.Batch.DelayMS)

	assert.Equal(t, 10, cfg.RateLimit.RequestsPerHour)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.Equal(t, 1024, cfg.RateLimit.MaxClients)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INVOX_SERVER_PORT", ":9090")
	t.Setenv("INVOX_EXTRACTOR_API_KEY", "sk-test")
	t.Setenv("INVOX_EXTRACTOR_MODEL", "claude-test-model")
	t.Setenv("INVOX_BATCH_MAX_DOCUMENTS", "5")
	t.Setenv("INVOX_BATCH_DELAY_MS", "0")
	t.Setenv("INVOX_RATELIMIT_REQUESTS_PER_HOUR", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.Extractor.APIKey)
	assert.Equal(t, "claude-test-model", cfg.Extractor.Model)
	assert.Equal(t, 5, cfg.Batch.MaxDocuments)
	assert.Equal(t, 0, cfg.Batch.DelayMS)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerHour)
}

func TestLoad_CORSOriginsAreSplitAndTrimmed(t *testing.T) {
	t.Setenv("INVOX_CORS_ALLOWED_ORIGINS", " https://app.example.com , https://admin.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PaaSPortFallback(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Port)
}

func TestLoad_ExplicitPortBeatsPaaSPort(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("INVOX_SERVER_PORT", ":9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Port)
}

func TestBatchConfig_DerivedValues(t *testing.T) {
	b := BatchConfig{MaxFileSizeMB: 10, DelayMS: 500}
	assert.Equal(t, int64(10*1024*1024), b.MaxFileSize())
	assert.Equal(t, 500*time.Millisecond, b.Delay())
}
