package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avelar/taskboard/internal/config"
	"github.com/avelar/taskboard/internal/ratelimit"
)

// NewSlidingWindow returns an Echo middleware enforcing the in-memory
// sliding window limiter, keyed by client IP. The limiter's janitor runs
// in the background until stop is closed. When disabled the middleware is
// a pass-through.
func NewSlidingWindow(cfg config.RateLimitConfig, stop <-chan struct{}) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	limiter := ratelimit.New(cfg.Window, cfg.Max)
	go limiter.StartJanitor(cfg.IdleEvict, cfg.IdleEvict, stop)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if key == "" {
				key = "unknown"
			}
			res := limiter.Check(key)

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Max))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				secs := int(math.Ceil(res.RetryAfter.Seconds()))
				if secs < 0 {
					secs = 0
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				if cfg.Debug {
					c.Logger().Infof("[ratelimit] block key=%s retry=%s", key, res.RetryAfter)
				}
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"message":     "rate limit exceeded",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}
