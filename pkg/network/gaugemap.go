package network

import "sort"

// GaugeMap maps external gauge identifiers to the network nodes they sit at.
type GaugeMap map[string]ID

// Node resolves a gauge id to its node.
func (m GaugeMap) Node(gauge string) (ID, error) {
	node, ok := m[gauge]
	if !ok {
		return "", &TopologyError{Op: "resolve", Gauge: gauge, Cause: ErrUnknownGauge}
	}
	return node, nil
}

// Inverse returns the node -> gauge direction of the mapping.
func (m GaugeMap) Inverse() map[ID]string {
	inv := make(map[ID]string, len(m))
	for gauge, node := range m {
		inv[node] = gauge
	}
	return inv
}

// PruneAbsent removes, in place, every entry whose node is not present in
// net. Returns the gauge ids that were dropped.
func (m GaugeMap) PruneAbsent(net *Network) []string {
	var dropped []string
	for gauge, node := range m {
		if !net.HasNode(node) {
			delete(m, gauge)
			dropped = append(dropped, gauge)
		}
	}
	sort.Strings(dropped)
	return dropped
}

// Nodes returns the mapped nodes in display order.
func (m GaugeMap) Nodes() []ID {
	ids := make([]ID, 0, len(m))
	for _, node := range m {
		ids = append(ids, node)
	}
	SortIDs(ids)
	return ids
}

// Gauges returns the gauge ids in lexicographic order.
func (m GaugeMap) Gauges() []string {
	gauges := make([]string, 0, len(m))
	for gauge := range m {
		gauges = append(gauges, gauge)
	}
	sort.Strings(gauges)
	return gauges
}
