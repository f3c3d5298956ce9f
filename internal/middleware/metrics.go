package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushq/coursehub/internal/service"
)

// Metrics records one observation per request: method, route template,
// status and latency. Unmatched routes fall back to the raw URL path so
// 404 traffic still shows up.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
