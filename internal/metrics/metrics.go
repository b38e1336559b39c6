package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	OperationsDerived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operations_derived_total",
			Help: "Operation rows written by derivation, by write kind",
		},
		[]string{"kind"},
	)

	DerivationSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "derivation_skipped_total",
			Help: "Derivations or service lines skipped, by reason",
		},
		[]string{"reason"},
	)

	DerivationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "derivation_failures_total",
			Help: "Derivations aborted with an error, by reason",
		},
		[]string{"reason"},
	)

	StatsRefreshFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stats_refresh_failures_total",
			Help: "Statistics refresh triggers that failed",
		},
	)
)

var once sync.Once

// InitMetrics registers the collectors with the default registry. Safe to
// call more than once.
func InitMetrics() {
	once.Do(func() {
		prometheus.MustRegister(
			HttpRequestsTotal,
			HttpRequestDuration,
			OperationsDerived,
			DerivationSkipped,
			DerivationFailures,
			StatsRefreshFailures,
		)
	})
}

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "undefined"
		}

		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HttpRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
	}
}
