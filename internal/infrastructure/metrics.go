package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the dashboard service. Registered on the
// default registry and served from /metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stylelens",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	DatasetUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stylelens",
		Name:      "dataset_uploads_total",
		Help:      "Dataset uploads by format and outcome.",
	}, []string{"format", "outcome"})

	ReportsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stylelens",
		Name:      "reports_built_total",
		Help:      "Render passes executed over a loaded dataset.",
	})

	ExportsServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stylelens",
		Name:      "exports_served_total",
		Help:      "Filtered CSV downloads served.",
	})

	DatasetsResident = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stylelens",
		Name:      "datasets_resident",
		Help:      "Datasets currently held in the in-memory registry.",
	})
)
