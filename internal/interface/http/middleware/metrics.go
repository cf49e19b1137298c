package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/librant-storefront/pkg/metrics"
)

// Metrics HTTP指标中间件
// path标签用路由模板（/api/v1/books/:id），避免按图书ID产生无限多的时间序列
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		defer metrics.DecGauge(metrics.HTTPRequestsInProgress)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, c.Request.Method, path, strconv.Itoa(c.Writer.Status()))
		metrics.ObserveHistogramVecSince(metrics.HTTPRequestDuration, start, c.Request.Method, path)
	}
}
