package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/taskboard/internal/config"
)

func limitedEcho(cfg config.RateLimitConfig, stop <-chan struct{}) *echo.Echo {
	e := echo.New()
	e.Use(NewSlidingWindow(cfg, stop))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	return e
}

func doReq(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":4321"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSlidingWindowBlocksOverLimit(t *testing.T) {
	stop := make(chan struct{})
	defer close(stop)
	cfg := config.RateLimitConfig{
		Enabled:   true,
		Window:    time.Minute,
		Max:       2,
		IdleEvict: time.Minute,
	}
	e := limitedEcho(cfg, stop)

	rec := doReq(e, "10.0.0.1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	rec = doReq(e, "10.0.0.1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = doReq(e, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "too_many_requests")

	// Another client is unaffected.
	rec = doReq(e, "10.0.0.2")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSlidingWindowDisabledPassesThrough(t *testing.T) {
	stop := make(chan struct{})
	defer close(stop)
	e := limitedEcho(config.RateLimitConfig{Enabled: false}, stop)

	for i := 0; i < 10; i++ {
		rec := doReq(e, "10.0.0.3")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}
