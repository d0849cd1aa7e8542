package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildboard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of handled HTTP requests.",
		},
		[]string{"method", "path", "code"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "buildboard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "code"},
	)

	buildsSimulatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildboard",
			Subsystem: "builds",
			Name:      "simulated_total",
			Help:      "Total number of simulated builds by outcome.",
		},
		[]string{"status"},
	)
	projectsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "buildboard",
			Subsystem: "projects",
			Name:      "created_total",
			Help:      "Total number of projects created.",
		},
	)
)

// Register installs the collectors on the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			buildsSimulatedTotal,
			projectsCreatedTotal,
		)
	})
}

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		code := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, code).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, code).Observe(time.Since(start).Seconds())
	}
}

func ObserveBuildSimulated(status string) {
	buildsSimulatedTotal.WithLabelValues(status).Inc()
}

func ObserveProjectCreated() {
	projectsCreatedTotal.Inc()
}
