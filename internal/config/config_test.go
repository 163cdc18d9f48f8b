package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "postgres")
	t.Setenv("POSTGRES_PASSWORD", "postgres")
	t.Setenv("POSTGRES_DB", "nexus")
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("APP_SECRET_TOKEN", "secret")
	t.Setenv("JWT_SECRET", "jwt")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.CartBackend)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 120, cfg.AdminRateLimit)
	assert.Equal(t, 24*time.Hour, cfg.InitDataMaxAge)
	assert.Equal(t, 7*24*time.Hour, cfg.CartTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=nexus sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_DatabaseURLWins(t *testing.T) {
	setRequired(t)
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.PostgresDSN())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_Required(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoad_InvalidCartBackend(t *testing.T) {
	setRequired(t)
	t.Setenv("CART_BACKEND", "mongo")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidNumber(t *testing.T) {
	setRequired(t)
	t.Setenv("POSTGRES_PORT", "abc")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_PORT must be number")
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("INIT_DATA_MAX_AGE", "1day")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INIT_DATA_MAX_AGE must be duration")
}
