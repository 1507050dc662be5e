package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	RecordsLoaded prometheus.Gauge

	// Query metrics.
	Queries       *prometheus.CounterVec   // labels: query
	QueryErrors   *prometheus.CounterVec   // labels: query
	QueryDuration *prometheus.HistogramVec // labels: query
	CacheLookups  *prometheus.CounterVec   // labels: query, result={hit,miss}

	// Report publishing metrics.
	ReportsPublished    prometheus.Counter
	ReportPublishErrors prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()

	prometheus.MustRegister(
		m.RecordsLoaded,
		m.Queries,
		m.QueryErrors,
		m.QueryDuration,
		m.CacheLookups,
		m.ReportsPublished,
		m.ReportPublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "volcano",
			Name:      "records_loaded",
			Help:      "Number of eruption records in the loaded dataset.",
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "volcano",
			Name:      "queries_total",
			Help:      "Analyzer queries served, by query.",
		}, []string{"query"}),
		QueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "volcano",
			Name:      "query_errors_total",
			Help:      "Analyzer queries that returned an error, by query.",
		}, []string{"query"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "volcano",
			Name:      "query_duration_seconds",
			Help:      "Analyzer query duration in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"query"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "volcano",
			Name:      "cache_total",
			Help:      "Query cache lookups by query and result.",
		}, []string{"query", "result"}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "volcano",
			Name:      "reports_published_total",
			Help:      "Reports written to the report topic.",
		}),
		ReportPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "volcano",
			Name:      "report_publish_errors_total",
			Help:      "Report builds or writes that failed.",
		}),
	}
}
