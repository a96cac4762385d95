package router

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace is the metrics namespace used when none is given.
const DefaultNamespace = "webcomp"

// Metrics holds the Prometheus collectors for a router.
// A nil *Metrics records nothing.
type Metrics struct {
	dispatches       *prometheus.CounterVec
	handlerCalls     *prometheus.CounterVec
	navigations      *prometheus.CounterVec
	configRejections *prometheus.CounterVec
	routes           prometheus.Gauge
}

// NewMetrics registers the router collectors on reg.
//
// Metrics collected:
//   - webcomp_router_dispatches_total: dispatch passes by whether any handler matched
//   - webcomp_router_handler_calls_total: handler invocations by route pattern
//   - webcomp_router_navigations_total: push/replace calls by mode and operation
//   - webcomp_router_config_rejections_total: rejected write-once assignments by field
//   - webcomp_router_routes: currently registered routes
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Metrics{
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "dispatches_total",
			Help:      "Total number of route dispatch passes",
		}, []string{"matched"}),

		handlerCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "handler_calls_total",
			Help:      "Total number of route handler invocations",
		}, []string{"pattern"}),

		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "navigations_total",
			Help:      "Total number of navigations",
		}, []string{"mode", "op"}),

		configRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "config_rejections_total",
			Help:      "Total number of rejected write-once configuration changes",
		}, []string{"field"}),

		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "routes",
			Help:      "Number of registered routes",
		}),
	}
}

func (m *Metrics) dispatched(handlers int) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(strconv.FormatBool(handlers > 0)).Inc()
}

func (m *Metrics) handlerCalled(pattern string) {
	if m == nil {
		return
	}
	m.handlerCalls.WithLabelValues(pattern).Inc()
}

func (m *Metrics) navigated(mode Mode, op string) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(string(mode), op).Inc()
}

func (m *Metrics) rejected(field string) {
	if m == nil {
		return
	}
	m.configRejections.WithLabelValues(field).Inc()
}

func (m *Metrics) setRoutes(n int) {
	if m == nil {
		return
	}
	m.routes.Set(float64(n))
}
