package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/librant-storefront/pkg/logger"
	"github.com/xiebiao/librant-storefront/pkg/tracing"
)

// RequestIDHeader 请求ID头，客户端传入时沿用
const RequestIDHeader = "X-Request-ID"

// RequestLogger 请求日志中间件
// 1. 生成（或沿用）请求ID并写回响应头
// 2. 把带request_id、trace_id的日志器放入context，下游用logger.FromContext取
// 3. 请求结束记录状态码和耗时，5xx记为Error
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		fields := []zap.Field{zap.String("request_id", requestID)}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		l := base.With(fields...)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		c.Next()

		status := c.Writer.Status()
		entry := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			entry = append(entry, zap.String("errors", c.Errors.String()))
		}
		if status >= 500 {
			l.Error("request", entry...)
			return
		}
		l.Info("request", entry...)
	}
}
