package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/webcomp-dev/webcomp/pkg/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "webcomp").
	Namespace string

	// Subsystem is the metrics subsystem (default: "route").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for handler duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Collector holds the handler metrics. Use it to wrap handlers of several
// routers with the same collectors.
type Collector struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector registers the handler metrics.
//
// Metrics collected:
//   - webcomp_route_handler_calls_total: handler calls by pattern and status
//   - webcomp_route_handler_duration_seconds: handler duration by pattern
func NewCollector(opts ...MetricsOption) *Collector {
	config := MetricsConfig{
		Namespace: router.DefaultNamespace,
		Subsystem: "route",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "handler_calls_total",
			Help:        "Total number of route handler calls",
			ConstLabels: config.ConstLabels,
		}, []string{"pattern", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "handler_duration_seconds",
			Help:        "Route handler duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"pattern"}),
	}
}

// Middleware returns middleware recording into c.
func (c *Collector) Middleware() Middleware {
	return func(pattern string, next router.Handler) router.Handler {
		return func(m router.Match) {
			start := time.Now()
			status := "panic"
			defer func() {
				c.duration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
				c.calls.WithLabelValues(pattern, status).Inc()
			}()
			next(m)
			status = "success"
		}
	}
}

// Prometheus creates middleware with its own collectors. Registering twice
// on the same registry panics; share a Collector instead.
func Prometheus(opts ...MetricsOption) Middleware {
	return NewCollector(opts...).Middleware()
}
