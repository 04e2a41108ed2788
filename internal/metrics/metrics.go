// Package metrics defines the Prometheus collectors exported on the metrics
// router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spechunter"

// Discovery outcomes.
const (
	OutcomeFound     = "found"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// Compare toggle results.
const (
	ToggleAdded    = "added"
	ToggleRemoved  = "removed"
	ToggleRejected = "rejected"
)

type Metrics struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	discoveries       *prometheus.CounterVec
	discoveryDuration prometheus.Histogram
	discoveryInFlight prometheus.Gauge
	compareToggles    *prometheus.CounterVec
	catalogAppends    *prometheus.CounterVec
	sessionsCreated   prometheus.Counter
	sessionsSwept     prometheus.Counter
}

// New registers every collector with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route"}),
		discoveries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discoveries_total",
			Help:      "Finished discovery lookups by outcome.",
		}, []string{"outcome"}),
		discoveryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "discovery_duration_seconds",
			Help:      "Wall time of discovery lookups.",
			Buckets:   []float64{0.1, 0.5, 1, 1.5, 2, 5, 10},
		}),
		discoveryInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "discoveries_in_flight",
			Help:      "Discovery lookups currently running in this process.",
		}),
		compareToggles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compare_toggles_total",
			Help:      "Comparison toggles by result.",
		}, []string{"result"}),
		catalogAppends: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_appends_total",
			Help:      "Items appended to the catalog by source.",
		}, []string{"source"}),
		sessionsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Dashboard sessions created.",
		}),
		sessionsSwept: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_swept_total",
			Help:      "Idle sessions removed by the sweeper.",
		}),
	}
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(route).Observe(seconds)
}

func (m *Metrics) DiscoveryStarted() { m.discoveryInFlight.Inc() }

func (m *Metrics) DiscoveryFinished(outcome string, seconds float64) {
	m.discoveryInFlight.Dec()
	m.discoveries.WithLabelValues(outcome).Inc()
	m.discoveryDuration.Observe(seconds)
}

func (m *Metrics) CompareToggled(result string) {
	m.compareToggles.WithLabelValues(result).Inc()
}

func (m *Metrics) CatalogAppended(source string) {
	m.catalogAppends.WithLabelValues(source).Inc()
}

func (m *Metrics) SessionCreated() { m.sessionsCreated.Inc() }

func (m *Metrics) SessionsSwept(n int) { m.sessionsSwept.Add(float64(n)) }
