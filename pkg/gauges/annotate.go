// Package gauges propagates gauge and calibration metadata along a drainage
// network's flow paths.
package gauges

import (
	"github.com/geoframe/basinet/pkg/algorithms"
	"github.com/geoframe/basinet/pkg/logging"
	"github.com/geoframe/basinet/pkg/network"
)

// Annotator builds gauge-rooted sub-networks and writes gauge/calibrate
// attributes onto their nodes.
type Annotator struct {
	log logging.Logger
}

// NewAnnotator creates an annotator logging through log. A nil log discards
// diagnostics.
func NewAnnotator(log logging.Logger) *Annotator {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Annotator{log: log}
}

// CalibrationFilter mutates net in place: for every candidate gauge node
// present in net other than outlet, the nodes strictly upstream of it are
// deleted. What remains are the nodes between each candidate gauge and the
// outlet; headwater contributions above nested gauges are discarded.
//
// Candidates are processed in display order, so a candidate strictly
// upstream of an earlier one may already be gone by the time its turn comes.
func (a *Annotator) CalibrationFilter(net *network.Network, candidates []network.ID, outlet network.ID) {
	ordered := make([]network.ID, len(candidates))
	copy(ordered, candidates)
	network.SortIDs(ordered)

	for _, candidate := range ordered {
		if !net.HasNode(candidate) || candidate == outlet {
			continue
		}
		up, err := algorithms.UpstreamNodes(net, candidate)
		if err != nil {
			continue
		}
		var strictlyUpstream []network.ID
		for _, id := range up {
			if id != candidate {
				strictlyUpstream = append(strictlyUpstream, id)
			}
		}
		net.RemoveNodes(strictlyUpstream)
		a.log.Debug("calibration filter pruned upstream of candidate",
			logging.Node(string(candidate)), logging.Count(len(strictlyUpstream)))
	}
}

// BuildSubnetwork derives the annotated sub-network governed by gaugeID:
//
//  1. resolve the gauge's node, the sub-network's outlet;
//  2. take the upstream sub-network of that outlet;
//  3. prune gauges from the mapping, in place, whose node fell outside it;
//  4. when isCalibration, apply CalibrationFilter over the surviving gauge
//     nodes;
//  5. attach the synthetic sink edge outlet -> "0";
//  6. annotate every node in topological order: gauge nodes carry their own
//     gauge id and calibrate only at the outlet, all other nodes inherit
//     from their first predecessor.
//
// The returned network is a fresh copy; net is never modified, the gauge
// map is. A missing sink after construction is an integrity warning: it is
// logged and the possibly-incomplete result returned for inspection.
func (a *Annotator) BuildSubnetwork(net *network.Network, gaugeMap network.GaugeMap, gaugeID string, isCalibration bool) (*network.Network, error) {
	outlet, err := gaugeMap.Node(gaugeID)
	if err != nil {
		return nil, err
	}

	netUp, err := algorithms.Upstream(net, outlet)
	if err != nil {
		return nil, err
	}

	if dropped := gaugeMap.PruneAbsent(netUp); len(dropped) > 0 {
		a.log.Debug("dropped gauges outside the upstream sub-network",
			logging.Gauge(gaugeID), logging.Count(len(dropped)))
	}
	inverse := gaugeMap.Inverse()

	if isCalibration {
		a.CalibrationFilter(netUp, gaugeMap.Nodes(), outlet)
	}

	netUp.AddEdge(outlet, network.Sink)

	// Defaults first; the topological pass below overwrites every node.
	for _, node := range netUp.Nodes() {
		netUp.SetAttrs(node, network.Attributes{Gauge: gaugeID, Calibrate: true})
	}

	order, err := algorithms.TopologicalSort(netUp)
	if err != nil {
		return nil, err
	}
	for _, node := range order {
		if g, ok := inverse[node]; ok {
			netUp.SetAttrs(node, network.Attributes{
				Gauge:     g,
				Calibrate: node == outlet,
			})
			continue
		}
		preds := netUp.Predecessors(node)
		if len(preds) > 0 {
			netUp.SetAttrs(node, netUp.Attrs(preds[0]))
		} else {
			netUp.SetAttrs(node, network.Attributes{})
		}
	}

	if !netUp.HasNode(network.Sink) {
		// Best effort: report and hand back the result as built.
		a.log.Error("sink node missing from gauge sub-network",
			logging.Gauge(gaugeID), logging.Node(string(outlet)))
	}

	return netUp, nil
}
