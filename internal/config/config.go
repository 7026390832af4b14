package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const maxBatchWorkers = 10

// Config is read from the environment.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	BatchWorkers    int           `env:"BATCH_WORKERS" envDefault:"10"`
	BatchChunkSize  int           `env:"BATCH_CHUNK_SIZE" envDefault:"10000"`
	BodyLimit       string        `env:"BODY_LIMIT" envDefault:"10M"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.BatchWorkers <= 0 || c.BatchWorkers > maxBatchWorkers {
		c.BatchWorkers = maxBatchWorkers
	}
	if c.BatchChunkSize <= 0 {
		c.BatchChunkSize = 10000
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.BodyLimit == "" {
		c.BodyLimit = "10M"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
