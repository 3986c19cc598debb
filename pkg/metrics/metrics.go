package metrics

import (
	"time"
)

// RecordTopologyLoad records a topology load attempt and, on success, the
// loaded network's size.
func (r *Registry) RecordTopologyLoad(status string, nodes, edges int) {
	r.TopologyLoadsTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		r.NetworkNodes.Set(float64(nodes))
		r.NetworkEdges.Set(float64(edges))
	}
}

// RecordValidation records a validation outcome: "ok" or the violation kind.
func (r *Registry) RecordValidation(outcome string) {
	r.ValidationsTotal.WithLabelValues(outcome).Inc()
}

// RecordSubnetworkBuild records a sub-network derivation with its duration.
func (r *Registry) RecordSubnetworkBuild(kind, status string, duration time.Duration) {
	r.SubnetworkBuildsTotal.WithLabelValues(kind, status).Inc()
	r.SubnetworkBuildDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordIntegrityWarning counts a logged-only integrity violation.
func (r *Registry) RecordIntegrityWarning() {
	r.IntegrityWarningsTotal.Inc()
}

// RecordTopologyWrite records a topology serialization attempt.
func (r *Registry) RecordTopologyWrite(status string) {
	r.TopologyWritesTotal.WithLabelValues(status).Inc()
}

// RecordStitch records a whole-network stitching pass.
func (r *Registry) RecordStitch(files int, duration time.Duration) {
	r.SeriesFilesWrittenTotal.Add(float64(files))
	r.SeriesStitchDuration.Observe(duration.Seconds())
}
