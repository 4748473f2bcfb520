package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, EnvIntDefault("TEST_INT", 1))

	t.Setenv("TEST_INT", "forty-two")
	assert.Equal(t, 1, EnvIntDefault("TEST_INT", 1))

	t.Setenv("TEST_INT", "")
	assert.Equal(t, 1, EnvIntDefault("TEST_INT", 1))
}

func TestOneOf(t *testing.T) {
	assert.NoError(t, OneOf("once", "SEED_MODE", "always", "once", "off"))
	assert.ErrorContains(t, OneOf("never", "SEED_MODE", "always", "once", "off"), "SEED_MODE")
}

func TestLoad(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "shop.db", cfg.DatabaseURL)
	require.Len(t, cfg.KafkaBrokers, 2)
	assert.Equal(t, "shop_events", cfg.KafkaTopic)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "shopitems", cfg.ESIndex)
}
