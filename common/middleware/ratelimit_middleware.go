package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/common/ratelimit"
)

// mutates reports whether the request can change stored state
func mutates(c echo.Context) bool {
	switch c.Request().Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// WriteRateLimitMiddleware limits mutating requests per client IP.
// Imports and allocation triggers each start database work, so a
// misbehaving uploader is throttled before it reaches the reconciler.
// Read requests pass through unchecked.
func WriteRateLimitMiddleware(rateLimiter *ratelimit.RateLimiter, limit int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !mutates(c) {
				return next(c)
			}

			result, err := rateLimiter.CheckClientLimit(c.Request().Context(), c.RealIP(), limit, 60)
			if err != nil {
				// On error, allow request (fail open for availability)
				return next(c)
			}

			if !result.Allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":   "rate_limit_exceeded",
					"message": "Too many write requests. Please try again later.",
					"details": map[string]interface{}{
						"limit":               result.Limit,
						"window":              "60 seconds",
						"retry_after_seconds": result.RetryAfterSeconds,
					},
				})
			}

			return next(c)
		}
	}
}
