package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries process-level settings. Values come from the environment;
// main loads .env first so local development works without exported vars.
type Config struct {
	Port        int    `env:"PORT" envDefault:"5000"`
	DatabaseURL string `env:"DB_URL,required"`
	RedisURL    string `env:"REDIS_URL,required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Websocket tuning
	SendBufferSize int           `env:"WS_SEND_BUFFER" envDefault:"128"`
	ReadLimit      int64         `env:"WS_READ_LIMIT" envDefault:"1048576"`
	ReadTimeout    time.Duration `env:"WS_READ_TIMEOUT" envDefault:"60s"`

	// Display-name cache TTL for the message pipeline
	UsernameCacheTTL time.Duration `env:"USERNAME_CACHE_TTL" envDefault:"10m"`

	// Asynq worker pool
	QueueConcurrency int `env:"ASYNQ_CONCURRENCY" envDefault:"10"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
