package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"attendance-service/internal/metrics"
)

// Metrics records count and latency per route pattern. Probe and scrape routes are not recorded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if metrics.ShouldSkipEndpoint(route) {
			return
		}
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
