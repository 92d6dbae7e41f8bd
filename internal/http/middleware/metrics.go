package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "sports_api"

// unmatchedRoute labels requests that hit no registered route, so scanners
// probing random URLs cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route template and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route template.",
			Buckets:   []float64{.002, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_inflight",
			Help:      "Requests currently being served.",
		},
	)

	// Feeds and member lists dominate the upper buckets.
	httpResponseBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_response_size_bytes",
			Help:      "Response body size by method and route template.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B..4MiB
		},
		[]string{"method", "route"},
	)

	// httpThrottled counts requests rejected by RateLimiter.
	httpThrottled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_throttled_total",
			Help:      "Requests rejected with 429, by budget class.",
		},
		[]string{"class"},
	)
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, httpInflight, httpResponseBytes, httpThrottled)
}

func routeLabel(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return unmatchedRoute
}

// Metrics records request count, latency, in-flight gauge and response size
// for every request, labelled by the registered route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		route := routeLabel(c)
		method := c.Request.Method

		httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		// Size is -1 when nothing was written (204, hijacked).
		if n := c.Writer.Size(); n >= 0 {
			httpResponseBytes.WithLabelValues(method, route).Observe(float64(n))
		}
	}
}
