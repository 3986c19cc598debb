package algorithms

import (
	"github.com/geoframe/basinet/pkg/network"
)

// FindCycle returns the edge sequence of the first cycle found in net, or
// nil when the graph is acyclic.
//
// Algorithm: depth-first search with three-colour marking:
//   - WHITE (0): unvisited node
//   - GRAY (1): currently visiting (node is on the recursion stack)
//   - BLACK (2): finished visiting (all descendants explored)
//
// Hitting a GRAY node means a back edge, which closes a cycle; the cycle is
// reconstructed from the parent pointers gathered on the way down.
func FindCycle(net *network.Network) []network.Edge {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	colour := make(map[network.ID]int)
	parent := make(map[network.ID]network.ID)

	var cycle []network.Edge
	var visit func(node network.ID) bool

	visit = func(node network.ID) bool {
		colour[node] = gray
		for _, next := range net.Successors(node) {
			switch colour[next] {
			case white:
				parent[next] = node
				if visit(next) {
					return true
				}
			case gray:
				cycle = extractCycle(next, node, parent)
				return true
			}
			// BLACK means a forward or cross edge, no cycle through it.
		}
		colour[node] = black
		return false
	}

	for _, node := range net.Nodes() {
		if colour[node] == white {
			if visit(node) {
				return cycle
			}
		}
	}
	return nil
}

// extractCycle walks parent pointers from the back edge's tail up to its
// head, then returns the cycle's edges in traversal order.
func extractCycle(head, tail network.ID, parent map[network.ID]network.ID) []network.Edge {
	if head == tail {
		// Self-loop.
		return []network.Edge{{From: head, To: head}}
	}

	var path []network.ID
	for at := tail; at != head; at = parent[at] {
		path = append(path, at)
	}
	path = append(path, head)

	// path is tail..head; reverse into head..tail then close the loop.
	edges := make([]network.Edge, 0, len(path))
	for i := len(path) - 1; i > 0; i-- {
		edges = append(edges, network.Edge{From: path[i], To: path[i-1]})
	}
	edges = append(edges, network.Edge{From: tail, To: head})
	return edges
}

// IsDAG reports whether net contains no cycles.
func IsDAG(net *network.Network) bool {
	return FindCycle(net) == nil
}
