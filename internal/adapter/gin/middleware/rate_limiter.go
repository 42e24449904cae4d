package middleware

import (
	pkgerrors "wegrowup-api/pkg/errors"
	"wegrowup-api/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimiter returns a Gin middleware applying the token bucket per method, route and client IP
func RateLimiter(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		key := ratelimit.Key(c.Request.Method+" "+routeOf(c), c.ClientIP())

		if !limiter.Allow(c.Request.Context(), key) {
			cfg := limiter.Config()
			err := pkgerrors.NewRateLimitError(cfg.RequestsPerSecond, cfg.BurstCapacity)
			c.AbortWithStatusJSON(pkgerrors.HTTPStatus(err), gin.H{
				"error":   "rate_limit_exceeded",
				"message": err.Error(),
			})
			return
		}

		c.Next()
	}
}

// routeOf returns the matched route template, keeping label and key cardinality bounded
func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}
