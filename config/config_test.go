package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DATABASE_URL":   "postgres://localhost/folio",
		"SESSION_SECRET": secret,
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []byte(secret), cfg.SessionSecret)
}

func TestFromEnv_MemoryStoreNeedsNoDatabase(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"STORE":          "memory",
		"SESSION_SECRET": secret,
		"SESSION_TTL":    "30m",
		"LOG_LEVEL":      "debug",
		"LOG_FORMAT":     "json",
		"PORT":           "9000",
	}))
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "9000", cfg.Port)

	logger := cfg.NewLogger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		errMsg string
	}{
		{
			name:   "missing database url",
			values: map[string]string{"SESSION_SECRET": secret},
			errMsg: "DATABASE_URL not set",
		},
		{
			name:   "unknown store",
			values: map[string]string{"STORE": "redis", "SESSION_SECRET": secret},
			errMsg: "unknown STORE",
		},
		{
			name:   "short secret",
			values: map[string]string{"STORE": "memory", "SESSION_SECRET": "short"},
			errMsg: "SESSION_SECRET",
		},
		{
			name:   "bad ttl",
			values: map[string]string{"STORE": "memory", "SESSION_SECRET": secret, "SESSION_TTL": "soon"},
			errMsg: "SESSION_TTL",
		},
		{
			name:   "bad log level",
			values: map[string]string{"STORE": "memory", "SESSION_SECRET": secret, "LOG_LEVEL": "loud"},
			errMsg: "LOG_LEVEL",
		},
		{
			name:   "bad log format",
			values: map[string]string{"STORE": "memory", "SESSION_SECRET": secret, "LOG_FORMAT": "xml"},
			errMsg: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(env(tt.values))
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
