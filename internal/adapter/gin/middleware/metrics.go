package middleware

import (
	"strconv"
	"time"

	"wegrowup-api/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per route
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		m.ObserveHTTP(c.Request.Method, routeOf(c), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
