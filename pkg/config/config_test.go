package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Pricing.MarginStandard.Equal(decimal.RequireFromString("61.5")))
	assert.True(t, cfg.Pricing.DefaultCommission.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 10<<20, cfg.Receipt.MaxBytes)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.False(t, cfg.DB.ForceIPv4)
	assert.Empty(t, cfg.DB.FallbackResolver)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PRICING_MARGIN_PREMIUM", "95,5")
	t.Setenv("REDIS_TTL", "30s")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Pricing.MarginPremium.Equal(decimal.RequireFromString("95.5")))
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_PoolDoBanco(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("DB_MIN_CONNS", "1")
	t.Setenv("DB_FORCE_IPV4", "true")
	t.Setenv("DB_FALLBACK_RESOLVER", "1.1.1.1:53")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "1.1.1.1:53", cfg.DB.FallbackResolver)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/1", DBName: "decora", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2F1@db:5432/decora?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
