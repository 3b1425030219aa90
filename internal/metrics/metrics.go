// Package metrics holds the Prometheus collectors for store calls and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

type Metrics struct {
	storeOps      *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	skipped       *prometheus.CounterVec
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "medstory_store_operations_total",
				Help: "Remote store calls by store, operation and outcome",
			},
			[]string{"store", "op", "outcome"},
		),
		storeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "medstory_store_operation_seconds",
				Help:    "Latency of remote store calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"store", "op"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "medstory_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "medstory_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "medstory_malformed_documents_total",
				Help: "Documents skipped by a query because they failed to parse",
			},
			[]string{"store"},
		),
	}
	reg.MustRegister(m.storeOps, m.storeDuration, m.httpRequests, m.httpDuration, m.skipped)
	return m
}

// ObserveStore records one remote call. A nil receiver is a no-op.
func (m *Metrics) ObserveStore(store, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.storeOps.WithLabelValues(store, op, outcome).Inc()
	m.storeDuration.WithLabelValues(store, op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) MalformedSkipped(store string) {
	if m == nil {
		return
	}
	m.skipped.WithLabelValues(store).Inc()
}

// Middleware records per-route request counts and latency.
// Routes are labelled by their pattern to keep cardinality bounded.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
