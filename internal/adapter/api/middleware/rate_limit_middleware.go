package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"skillbridge/internal/infrastructure/ratelimit"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit throttles the named action per authenticated user.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			allowed, wait := m.limiter.Allow(uid, action)
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests,
					"Rate limit exceeded, retry in "+wait.Round(time.Second).String())
			}

			return next(c)
		}
	}
}
