package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// Logger 请求日志中间件
func Logger(logger hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// 处理请求
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		args := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"ip", c.ClientIP(),
			"status", status,
			"latency", latency,
		}
		switch {
		case status >= 500:
			logger.Error("request", args...)
		case status >= 400:
			logger.Warn("request", args...)
		default:
			logger.Info("request", args...)
		}
	}
}
