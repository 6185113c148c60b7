// Package metrics exposes Prometheus collectors for the shortening service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/serroba/shortlink/internal/shortener"
)

// Metrics holds all collectors, registered against one registry.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	codeConflicts   prometheus.Counter
	urlConflicts    prometheus.Counter
	storeErrors     prometheus.Counter
	created         prometheus.Counter
	insertAttempts  prometheus.Histogram
}

// New creates the collectors on a fresh registry, plus the Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation", "status"},
		),
		codeConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "shortener_code_conflicts_total",
			Help: "Generated codes rejected because they were already taken",
		}),
		urlConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "shortener_url_conflicts_total",
			Help: "Inserts that lost a race against a concurrent writer of the same URL",
		}),
		storeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "shortener_store_errors_total",
			Help: "Store failures surfaced to callers",
		}),
		created: factory.NewCounter(prometheus.CounterOpts{
			Name: "shortener_mappings_created_total",
			Help: "Mappings created",
		}),
		insertAttempts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "shortener_insert_attempts",
			Help:    "Insert attempts needed to create a mapping",
			Buckets: []float64{1, 2, 3, 5, 8},
		}),
	}
}

func (m *Metrics) CodeConflict() {
	m.codeConflicts.Inc()
}

func (m *Metrics) URLConflict() {
	m.urlConflicts.Inc()
}

func (m *Metrics) Created(attempts int) {
	m.created.Inc()
	m.insertAttempts.Observe(float64(attempts))
}

func (m *Metrics) StoreError() {
	m.storeErrors.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request duration per huma operation.
func (m *Metrics) Middleware(ctx huma.Context, next func(huma.Context)) {
	start := time.Now()

	next(ctx)

	operation := "unknown"
	if op := ctx.Operation(); op != nil && op.OperationID != "" {
		operation = op.OperationID
	}

	m.requestDuration.
		WithLabelValues(operation, strconv.Itoa(ctx.Status())).
		Observe(time.Since(start).Seconds())
}

// Compile-time check.
var _ shortener.Observer = (*Metrics)(nil)
