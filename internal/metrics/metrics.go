package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for product operations.
const (
	OutcomeSuccess   = "success"
	OutcomeNotFound  = "not_found"
	OutcomeForbidden = "forbidden"
	OutcomeConflict  = "conflict"
	OutcomeError     = "error"
)

// Metrics exposes Prometheus collectors on a private registry. A nil *Metrics records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	productOps   *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers and returns the service metrics.
func New() *Metrics {
	productOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "productapi_product_operations_total",
		Help: "Counts product operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "productapi_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		productOps,
		httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:     registry,
		productOps:   productOps,
		httpDuration: httpDuration,
	}
}

// ProductOperation counts one product operation.
func (m *Metrics) ProductOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.productOps.WithLabelValues(operation, outcome).Inc()
}

// HTTPRequest observes one served request.
func (m *Metrics) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
