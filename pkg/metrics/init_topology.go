package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTopologyMetrics() {
	r.TopologyLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "basinet_topology_loads_total",
			Help: "Total number of topology file loads",
		},
		[]string{"status"},
	)

	r.ValidationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "basinet_validations_total",
			Help: "Total number of network validations, by outcome",
		},
		[]string{"outcome"},
	)

	r.SubnetworkBuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "basinet_subnetwork_builds_total",
			Help: "Total number of sub-network derivations",
		},
		[]string{"kind", "status"},
	)

	r.SubnetworkBuildDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basinet_subnetwork_build_duration_seconds",
			Help:    "Sub-network derivation duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"kind"},
	)

	r.NetworkNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "basinet_network_nodes",
			Help: "Node count of the last loaded network",
		},
	)

	r.NetworkEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "basinet_network_edges",
			Help: "Edge count of the last loaded network",
		},
	)

	r.IntegrityWarningsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "basinet_integrity_warnings_total",
			Help: "Total number of post-construction integrity warnings",
		},
	)

	r.TopologyWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "basinet_topology_writes_total",
			Help: "Total number of topology file writes",
		},
		[]string{"status"},
	)
}
