package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"minerva/pkg/errors"
)

type Config struct {
	App           AppConfig
	AI            AIConfig
	MarketData    MarketDataConfig
	Redis         RedisConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"minerva"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type AIConfig struct {
	OpenAIKey      string        `envconfig:"OPENAI_API_KEY"`
	Model          string        `envconfig:"AI_MODEL" default:"gpt-4o"`
	Temperature    float64       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	MaxTokens      int           `envconfig:"AI_MAX_TOKENS" default:"4096"`
	RequestTimeout time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"120s"`
	ReqPerMinute   int           `envconfig:"AI_REQUESTS_PER_MINUTE" default:"60"`
}

type MarketDataConfig struct {
	CacheEnabled bool          `envconfig:"MARKET_DATA_CACHE_ENABLED" default:"false"`
	CacheTTL     time.Duration `envconfig:"MARKET_DATA_CACHE_TTL" default:"3m"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type ErrorTrackingConfig struct {
	SentryDSN string `envconfig:"SENTRY_DSN"`
	Enabled   bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
}

// Load reads configuration from the environment. A .env file is honored when
// present but its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment config")
	}

	return &cfg, nil
}
