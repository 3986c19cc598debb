package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application. Each session creates its
// own registry; there is no process-wide default.
type Registry struct {
	// Topology metrics
	TopologyLoadsTotal       *prometheus.CounterVec
	ValidationsTotal         *prometheus.CounterVec
	SubnetworkBuildsTotal    *prometheus.CounterVec
	SubnetworkBuildDuration  *prometheus.HistogramVec
	NetworkNodes             prometheus.Gauge
	NetworkEdges             prometheus.Gauge
	IntegrityWarningsTotal   prometheus.Counter
	TopologyWritesTotal      *prometheus.CounterVec

	// Time-series metrics
	SeriesFilesWrittenTotal prometheus.Counter
	SeriesStitchDuration    prometheus.Histogram

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initTopologyMetrics()
	r.initTimeseriesMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry, for
// wiring an exposition handler.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
