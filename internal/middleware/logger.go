package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger logs one line per request. /api/* goes out at info (warn/error for
// 4xx/5xx), everything else at debug.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)

		path := c.Request.URL.Path
		status := c.Writer.Status()

		level := zapcore.DebugLevel
		if strings.HasPrefix(path, "/api/") {
			switch {
			case status >= 500:
				level = zapcore.ErrorLevel
			case status >= 400:
				level = zapcore.WarnLevel
			default:
				level = zapcore.InfoLevel
			}
		}

		ce := log.Check(level, "HTTP")
		if ce == nil {
			return
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", dur),
			zap.String("clientIP", c.ClientIP()),
			zap.String("request_id", c.GetString(RequestIDKey)),
		}
		if v, ok := c.Get("user_id"); ok {
			fields = append(fields, zap.Any("user_id", v))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		ce.Write(fields...)
	}
}
