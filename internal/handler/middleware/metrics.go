package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type HTTPObserver interface {
	ObserveHTTP(method, route, status string, d time.Duration)
}

// Metrics records request latency labelled by the matched route template, never the raw path.
func Metrics(obs HTTPObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		obs.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
