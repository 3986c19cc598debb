package algorithms

import (
	"sort"

	"github.com/geoframe/basinet/pkg/network"
)

// TopologicalSort returns net's nodes in topological order using Kahn's
// algorithm: for every edge u->v, u precedes v. Among the orders satisfying
// that partial order the result is deterministic (ties break by display
// order), but callers must only rely on the partial-order property. Fails
// with ErrNotAcyclic when net contains a cycle.
func TopologicalSort(net *network.Network) ([]network.ID, error) {
	nodes := net.Nodes()

	inDegree := make(map[network.ID]int, len(nodes))
	for _, id := range nodes {
		inDegree[id] = net.InDegree(id)
	}

	var queue []network.ID
	for _, id := range nodes {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]network.ID, 0, len(nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, next := range net.Successors(current) {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, &network.TopologyError{Op: "topological sort", Cause: network.ErrNotAcyclic}
	}
	return order, nil
}

// SortSubset returns nodes reordered to match net's topological order,
// stable with respect to the full order's relative positions. Nodes absent
// from net keep their input order at the end of the result. Fails with
// ErrNotAcyclic when net contains a cycle.
func SortSubset(net *network.Network, nodes []network.ID) ([]network.ID, error) {
	order, err := TopologicalSort(net)
	if err != nil {
		return nil, err
	}

	position := make(map[network.ID]int, len(order))
	for i, id := range order {
		position[id] = i
	}

	sorted := make([]network.ID, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, iok := position[sorted[i]]
		pj, jok := position[sorted[j]]
		if !iok {
			pi = len(order)
		}
		if !jok {
			pj = len(order)
		}
		return pi < pj
	})
	return sorted, nil
}
