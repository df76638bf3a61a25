package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lehrteam/stundenplan-api/internal/service"
)

// Metrics records per-request duration and count. Routes are labeled by
// their template so path parameters do not explode the cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	if metricsSvc == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
