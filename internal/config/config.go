package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Extractor ExtractorConfig
	Batch     BatchConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExtractorConfig holds settings for the external extraction model.
type ExtractorConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	MaxTokens   int    `mapstructure:"max_tokens"`
}

// BatchConfig holds batch orchestration settings.
type BatchConfig struct {
	MaxDocuments  int   `mapstructure:"max_documents"`
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
	DelayMS       int   `mapstructure:"delay_ms"`
}

// Delay returns the inter-document quiescence delay.
func (b *BatchConfig) Delay() time.Duration {
	return time.Duration(b.DelayMS) * time.Millisecond
}

// MaxFileSize returns the per-document size cap in bytes.
func (b *BatchConfig) MaxFileSize() int64 {
	return b.MaxFileSizeMB * 1024 * 1024
}

// RateLimitConfig holds per-client rate limiting settings for the
// extraction endpoint.
type RateLimitConfig struct {
	RequestsPerHour int `mapstructure:"requests_per_hour"`
	Burst           int `mapstructure:"burst"`
	MaxClients      int `mapstructure:"max_clients"`
}

// Load reads configuration from environment variables with the INVOX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Extractor defaults
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.model", "claude-sonnet-4-20250514")
	v.SetDefault("extractor.endpoint", "")
	v.SetDefault("extractor.timeout_secs", 120)
	v.SetDefault("extractor.max_tokens", 8192)

	// Batch defaults
	v.SetDefault("batch.max_documents", 50)
	v.SetDefault("batch.max_file_size_mb", 10)
	v.SetDefault("batch.delay_ms", 500)

	// Rate limit defaults (coarse external quota: ~10 extractions/hour/client)
	v.SetDefault("ratelimit.requests_per_hour", 10)
	v.SetDefault("ratelimit.burst", 3)
	v.SetDefault("ratelimit.max_clients", 1024)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "INVOX_SERVER_PORT",
		"server.read_timeout":        "INVOX_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "INVOX_SERVER_WRITE_TIMEOUT",
		"server.environment":         "INVOX_SERVER_ENVIRONMENT",
		"log.level":                  "INVOX_LOG_LEVEL",
		"log.format":                 "INVOX_LOG_FORMAT",
		"cors.allowed_origins":       "INVOX_CORS_ALLOWED_ORIGINS",
		"extractor.api_key":          "INVOX_EXTRACTOR_API_KEY",
		"extractor.model":            "INVOX_EXTRACTOR_MODEL",
		"extractor.endpoint":         "INVOX_EXTRACTOR_ENDPOINT",
		"extractor.timeout_secs":     "INVOX_EXTRACTOR_TIMEOUT_SECS",
		"extractor.max_tokens":       "INVOX_EXTRACTOR_MAX_TOKENS",
		"batch.max_documents":        "INVOX_BATCH_MAX_DOCUMENTS",
		"batch.max_file_size_mb":     "INVOX_BATCH_MAX_FILE_SIZE_MB",
		"batch.delay_ms":             "INVOX_BATCH_DELAY_MS",
		"ratelimit.requests_per_hour": "INVOX_RATELIMIT_REQUESTS_PER_HOUR",
		"ratelimit.burst":             "INVOX_RATELIMIT_BURST",
		"ratelimit.max_clients":       "INVOX_RATELIMIT_MAX_CLIENTS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Extractor = ExtractorConfig{
		APIKey:      v.GetString("extractor.api_key"),
		Model:       v.GetString("extractor.model"),
		Endpoint:    v.GetString("extractor.endpoint"),
		TimeoutSecs: v.GetInt("extractor.timeout_secs"),
		MaxTokens:   v.GetInt("extractor.max_tokens"),
	}
	cfg.Batch = BatchConfig{
		MaxDocuments:  v.GetInt("batch.max_documents"),
		MaxFileSizeMB: v.GetInt64("batch.max_file_size_mb"),
		DelayMS:       v.GetInt("batch.delay_ms"),
	}
	cfg.RateLimit = RateLimitConfig{
		RequestsPerHour: v.GetInt("ratelimit.requests_per_hour"),
		Burst:           v.GetInt("ratelimit.burst"),
		MaxClients:      v.GetInt("ratelimit.max_clients"),
	}

	return cfg, nil
}
