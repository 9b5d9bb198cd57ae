package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/osint-framework/internal/metrics"
)

// MetricsMiddleware 记录请求耗时，route 使用注册的路由模板
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
