package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTimeseriesMetrics() {
	r.SeriesFilesWrittenTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "basinet_series_files_written_total",
			Help: "Total number of placeholder series files written",
		},
	)

	r.SeriesStitchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "basinet_series_stitch_duration_seconds",
			Help:    "Duration of whole-network series stitching in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
	)
}
