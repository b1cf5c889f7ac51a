package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "piclips",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "piclips",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "piclips",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	tipOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "piclips",
			Subsystem: "tips",
			Name:      "operations_total",
			Help:      "Tip operations by outcome.",
		},
		[]string{"operation", "result"},
	)

	tipDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "piclips",
			Subsystem: "tips",
			Name:      "operation_duration_seconds",
			Help:      "Duration of tip operations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation"},
	)

	tipTokens = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "piclips",
			Subsystem: "tips",
			Name:      "tokens_transferred_total",
			Help:      "Tokens moved by committed tips.",
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "piclips",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by key family and outcome.",
		},
		[]string{"key", "outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		tipOperations,
		tipDuration,
		tipTokens,
		cacheLookups,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		// the route pattern keeps label cardinality bounded
		path := c.Route().Path
		method := c.Method()
		httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// TipCollector records tip service metrics in the Registry.
type TipCollector struct{}

func (TipCollector) RecordOperationDuration(operation string, d time.Duration) {
	tipDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (TipCollector) RecordOperationResult(operation, result string) {
	tipOperations.WithLabelValues(operation, result).Inc()
}

func (TipCollector) RecordTip(amount int64) {
	tipTokens.Add(float64(amount))
}

func (TipCollector) RecordCacheHit(key string) {
	cacheLookups.WithLabelValues(key, "hit").Inc()
}

func (TipCollector) RecordCacheMiss(key string) {
	cacheLookups.WithLabelValues(key, "miss").Inc()
}
