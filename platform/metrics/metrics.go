// Package metrics provides prometheus instrumentation for the application.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gateway call outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeFailure        = "failure"
	OutcomeShortCircuited = "short_circuited"
)

// Collector registers and exposes the service's prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	productsCreated   prometheus.Counter
	productRejections *prometheus.CounterVec
	gatewayRequests   *prometheus.CounterVec
	breakerState      *prometheus.GaugeVec
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		productsCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "products_created_total",
			Help: "Total number of products persisted via the creation pipeline",
		}),
		productRejections: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "product_rejections_total",
			Help: "Total number of product creation rejections by rule",
		}, []string{"rule"}),
		gatewayRequests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "client_gateway_requests_total",
			Help: "Total number of client-service lookups by outcome",
		}, []string{"outcome"}),
		breakerState: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		}, []string{"breaker"}),
	}
}

// ProductCreated records a successful creation.
func (c *Collector) ProductCreated() {
	c.productsCreated.Inc()
}

// ProductRejected records a rejection attributed to a named rule.
func (c *Collector) ProductRejected(rule string) {
	c.productRejections.WithLabelValues(rule).Inc()
}

// GatewayRequest records an outbound lookup outcome.
func (c *Collector) GatewayRequest(outcome string) {
	c.gatewayRequests.WithLabelValues(outcome).Inc()
}

// BreakerState records the current state of a named breaker.
func (c *Collector) BreakerState(name string, state float64) {
	c.breakerState.WithLabelValues(name).Set(state)
}

// Handler exposes the registry for scraping.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
