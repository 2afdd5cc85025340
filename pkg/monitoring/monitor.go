package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postplace_http_requests_total",
			Help: "HTTP requests processed, by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postplace_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// 实时通道指标
	WSConnectedClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "postplace_realtime_connected_clients",
			Help: "Current number of connected realtime clients",
		},
	)

	WSEventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postplace_realtime_events_total",
			Help: "Realtime events broadcast to clients, by event type",
		},
		[]string{"event"},
	)
)

// Init 注册所有采集器。测试不调用，避免重复注册 panic。
func Init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		WSConnectedClients,
		WSEventCounter,
	)
}

// MetricsMiddleware 记录每个请求的计数和耗时，按注册路由聚合
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			route,
		).Observe(time.Since(start).Seconds())
	}
}

// PrometheusHandler 暴露 /metrics
func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
