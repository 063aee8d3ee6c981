package metrics

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 指标定义：
// - http_requests_total：按路径与方法统计请求次数（附带状态码标签）
// - http_request_duration_seconds：按路径与方法统计请求耗时分布
// - catalog_writes_total：服务目录写操作计数（create/update/delete）
// - logins_total：登录尝试计数（按结果）
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP 请求计数（按路径/方法/状态）"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP 请求耗时（秒）", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	CatalogWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "catalog_writes_total", Help: "服务目录写操作计数"},
		[]string{"op"},
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "logins_total", Help: "登录尝试计数（按结果）"},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, CatalogWrites, Logins)
}

// Handler 返回记录基础 HTTP 指标的中间件（QPS/耗时）。
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		HTTPRequests.WithLabelValues(path, c.Request.Method, fmt.Sprintf("%d", c.Writer.Status())).Inc()
		HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Expose 在路由上挂载 /metrics 端点。
func Expose(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
