package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the assistant backend.
type Config struct {
	// Server
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "text"

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// LLM provider. An empty or trivially short key disables the provider
	// path and routes every request through the fallback responder.
	OpenAIKey   string  `env:"OPENAI_API_KEY"`
	ChatModel   string  `env:"CHAT_MODEL" envDefault:"gpt-4o"`
	Temperature float64 `env:"CHAT_TEMPERATURE" envDefault:"0.7"`

	// Analysis cache. Empty REDIS_ADDR selects the no-op cache.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"3600"` // seconds

	// Usage events. Empty NATS_URL selects the no-op publisher.
	NATSURL string `env:"NATS_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
