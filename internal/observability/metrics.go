package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "erovista"

// Metrics holds the Prometheus counters, histograms, and gauges for the resolver service.
type Metrics struct {
	// Resolver metrics.
	ResolverRequests *prometheus.CounterVec   // labels: operation={capacity,sizes,values}, outcome={hit,miss,invalid}
	ResolverDuration *prometheus.HistogramVec // labels: operation

	// Dataset metrics.
	DatasetRows   prometheus.Gauge
	DatasetLoaded prometheus.Gauge

	// Session metrics.
	SessionsActive prometheus.Gauge
	TermsAccepted  prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		ResolverRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolver_requests_total",
			Help:      "Resolver queries by operation and outcome.",
		}, []string{"operation", "outcome"}),
		ResolverDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolver_duration_seconds",
			Help:      "Time spent filtering the reference table.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"operation"}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Normalized rows in the loaded reference table.",
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_loaded",
			Help:      "1 when a reference table is installed, 0 otherwise.",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently held by the session store.",
		}),
		TermsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terms_accepted_total",
			Help:      "Terms-of-service acceptances.",
		}),
	}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ResolverRequests,
		m.ResolverDuration,
		m.DatasetRows,
		m.DatasetLoaded,
		m.SessionsActive,
		m.TermsAccepted,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
