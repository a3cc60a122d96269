package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(newViper(nil))

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsProduction)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://eu.i.posthog.com", cfg.PosthogEndpoint)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg := fromViper(newViper(map[string]any{
		"PORT":                 "9090",
		"IS_PRODUCTION":        "true",
		"STORE_DRIVER":         " SQLite ",
		"SQLITE_PATH":          "/tmp/x.db",
		"SERVER_WRITE_TIMEOUT": "30s",
	}))

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
}

func TestFromViper_InvalidValuesFallBack(t *testing.T) {
	cfg := fromViper(newViper(map[string]any{
		"STORE_DRIVER":            "mysql",
		"SERVER_READ_TIMEOUT":     "soon",
		"SERVER_SHUTDOWN_TIMEOUT": "-1s",
	}))

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
