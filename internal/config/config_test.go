package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmbfi/scholar-portal/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "portal")
	t.Setenv("DB_PASS", "portal-pw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "fmbfi")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := config.Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "fmbfi", cfg.DBName)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.GoogleEnabled())
}

func TestGoogleEnabledNeedsFullTriple(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg := config.Load()
	require.False(t, cfg.GoogleEnabled(), "redirect URL still missing")

	t.Setenv("GOOGLE_REDIRECT_URL", "https://portal.fmbfi.test/v1/auth/google/callback")
	cfg = config.Load()
	assert.True(t, cfg.GoogleEnabled())
}

func TestRateLimitConfigFloors(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "0s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := config.LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	assert.GreaterOrEqual(t, cfg.TTL, 5*cfg.RefillInterval)
}

func TestCacheConfigMethodParsing(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")

	cfg := config.LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
}
