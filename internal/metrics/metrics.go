// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the application's collectors.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	InvoicesComputed *prometheus.CounterVec
	InvoiceWarnings  *prometheus.CounterVec
	InvoiceArchives  *prometheus.CounterVec
	RecordWrites     *prometheus.CounterVec
	Uploads          *prometheus.CounterVec
}

// New creates the collectors and registers them on reg, or on the default
// registerer when reg is nil. Collectors already registered under the same
// name are reused.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		InvoicesComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_computed_total",
			Help:      "Invoices computed, by source.",
		}, []string{"source"}),
		InvoiceWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_line_warnings_total",
			Help:      "Line values sanitized during invoice computation, by field.",
		}, []string{"field"}),
		InvoiceArchives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_archives_total",
			Help:      "Invoice archive writes and removals, by result.",
		}, []string{"result"}),
		RecordWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_writes_total",
			Help:      "Resource record writes, by resource and action.",
		}, []string{"resource", "action"}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Object storage uploads, by result.",
		}, []string{"result"}),
	}

	m.HTTPRequests = registerCounter(reg, m.HTTPRequests)
	m.InvoicesComputed = registerCounter(reg, m.InvoicesComputed)
	m.InvoiceWarnings = registerCounter(reg, m.InvoiceWarnings)
	m.InvoiceArchives = registerCounter(reg, m.InvoiceArchives)
	m.RecordWrites = registerCounter(reg, m.RecordWrites)
	m.Uploads = registerCounter(reg, m.Uploads)
	if err := reg.Register(m.HTTPDuration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(fmt.Errorf("register histogram: %w", err))
		}
		if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
			m.HTTPDuration = existing
		}
	}
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, fmt.Sprint(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(float64(elapsed) / float64(time.Millisecond))
}

func registerCounter(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(fmt.Errorf("register counter: %w", err))
		}
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing
		}
	}
	return c
}
