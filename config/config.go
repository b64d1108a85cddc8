// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"folio/auth"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	DatabaseURL   string
	Port          string
	SessionSecret []byte
	SessionTTL    time.Duration
	Store         string
	LogLevel      logrus.Level
	LogFormat     string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL: getenv("DATABASE_URL"),
		Port:        withDefault(getenv("PORT"), "8080"),
		Store:       strings.ToLower(withDefault(getenv("STORE"), StorePostgres)),
		LogFormat:   strings.ToLower(withDefault(getenv("LOG_FORMAT"), "text")),
	}

	switch cfg.Store {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL not set")
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE %q (expected postgres or memory)", cfg.Store)
	}

	secret := getenv("SESSION_SECRET")
	if len(secret) < auth.MinSecretLength {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d bytes", auth.MinSecretLength)
	}
	cfg.SessionSecret = []byte(secret)

	ttl, err := time.ParseDuration(withDefault(getenv("SESSION_TTL"), "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL %q", getenv("SESSION_TTL"))
	}
	cfg.SessionTTL = ttl

	level, err := logrus.ParseLevel(withDefault(getenv("LOG_LEVEL"), "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (expected text or json)", cfg.LogFormat)
	}

	return cfg, nil
}

// NewLogger builds the process logger from the config.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
