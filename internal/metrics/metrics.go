// Package metrics holds the Prometheus collectors of the diagnostics service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storage_diagnostics"

var (
	datasetLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "loads_total",
			Help:      "Dataset load attempts by format and outcome code",
		},
		[]string{"format", "result"},
	)

	parseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing an uploaded file",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"format"},
	)

	datasetRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "dataset_rows",
			Help:      "Series rows of the active dataset",
		},
	)

	viewRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "views_total",
			Help:      "Derived views computed, by view and outcome code",
		},
		[]string{"view", "result"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(datasetLoads)
	prometheus.MustRegister(parseDuration)
	prometheus.MustRegister(datasetRows)
	prometheus.MustRegister(viewRequests)
	prometheus.MustRegister(httpRequests)
	prometheus.MustRegister(httpDuration)
}

// ObserveLoad records one parse attempt. result is "ok" or an error code.
func ObserveLoad(format, result string, elapsed time.Duration) {
	if format == "" {
		format = "unknown"
	}
	datasetLoads.WithLabelValues(format, result).Inc()
	parseDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// SetDatasetRows publishes the size of the dataset that became active.
func SetDatasetRows(n int) {
	datasetRows.Set(float64(n))
}

func ObserveView(view, result string) {
	viewRequests.WithLabelValues(view, result).Inc()
}

func ObserveHTTP(method, route, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
