package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmbfi/scholar-portal/internal/config"
	"github.com/fmbfi/scholar-portal/internal/middleware"
)

func limiterConfig(capacity int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Minute, // no refill during the test
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
}

func runLimited(t *testing.T, mw echo.MiddlewareFunc) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec.Code
}

func TestTokenBucketBlocksWhenExhausted(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	mw := middleware.NewTokenBucket(limiterConfig(2), rdb)

	assert.Equal(t, http.StatusOK, runLimited(t, mw))
	assert.Equal(t, http.StatusOK, runLimited(t, mw))
	assert.Equal(t, http.StatusTooManyRequests, runLimited(t, mw))
}

func TestTokenBucketDisabledWithoutRedis(t *testing.T) {
	mw := middleware.NewTokenBucket(limiterConfig(1), nil)

	// Nil client means no limiting at all.
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, runLimited(t, mw))
	}
}

func TestTokenBucketFailsOpenOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mw := middleware.NewTokenBucket(limiterConfig(1), rdb)
	mr.Close() // simulate Redis outage after startup

	assert.Equal(t, http.StatusOK, runLimited(t, mw))
}
