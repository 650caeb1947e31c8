package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.Server.IsProduction())
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Server.IsProduction())
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "catalog",
		Password: "p@ss",
		Database: "catalog",
		Schema:   "public",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://catalog:p%40ss@db:5432/catalog?search_path=public&sslmode=disable", db.DSN())

	db.URL = "postgres://override"
	assert.Equal(t, "postgres://override", db.DSN())
}

func TestRedisAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", RedisConfig{Host: "localhost", Port: "6379"}.Addr())
}
