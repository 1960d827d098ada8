package metrics

import (
	"net/http"
	"strconv"
	"time"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ output.MetricsPort = (*Metrics)(nil)

const (
	namespace = "ecofin"
	subsystem = "advisor"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	// GenerationsTotal counts provider round trips by provider and outcome.
	GenerationsTotal *prometheus.CounterVec
	// GenerationDurationSeconds is the provider call latency.
	GenerationDurationSeconds *prometheus.HistogramVec
	// HTTPRequestsTotal counts handled requests by route, method and status code.
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTPInFlight is the number of requests currently being served.
	HTTPInFlight prometheus.Gauge
}

// New registers the advisor collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		GenerationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "generations_total",
			Help:      "Total number of provider round trips, labeled by provider and outcome.",
		}, []string{"provider", "outcome"}),
		GenerationDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "generation_duration_seconds",
			Help:      "Time spent waiting for the provider.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60},
		}, []string{"provider"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests, labeled by route, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_in_flight",
			Help:      "Current number of HTTP requests being served.",
		}),
	}

	reg.MustRegister(
		m.GenerationsTotal,
		m.GenerationDurationSeconds,
		m.HTTPRequestsTotal,
		m.HTTPInFlight,
	)
	return m
}

// NewDefault uses a fresh registry that also carries the Go and process collectors.
func NewDefault() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

func (m *Metrics) ObserveGeneration(provider string, outcome entity.GenerationOutcome, elapsed time.Duration) {
	m.GenerationsTotal.WithLabelValues(provider, string(outcome)).Inc()
	m.GenerationDurationSeconds.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveHTTP(route, method string, code int) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
