package middleware

import (
	"strconv"

	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware counts finished requests by method, route template and status.
func MetricsMiddleware(m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
