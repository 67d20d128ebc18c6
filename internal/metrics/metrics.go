package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transform metrics
	RowsDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scannorm_rows_decoded_total",
			Help: "Total number of source rows decoded",
		},
		[]string{"adapter"},
	)

	RowsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scannorm_rows_emitted_total",
			Help: "Total number of schema-conformant rows emitted",
		},
		[]string{"adapter"},
	)

	RowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scannorm_rows_dropped_total",
			Help: "Total number of rows dropped during normalization",
		},
		[]string{"adapter", "reason"},
	)

	TransformDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scannorm_transform_duration_seconds",
			Help:    "Duration of one transform invocation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"adapter"},
	)

	TransformErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scannorm_transform_errors_total",
			Help: "Total number of fatal transform errors",
		},
		[]string{"adapter", "kind"},
	)
)

// Drop reasons used with RowsDropped.
const (
	ReasonEnum       = "enum"
	ReasonExtraction = "extraction"
)
