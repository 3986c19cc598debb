package algorithms

import (
	"github.com/geoframe/basinet/pkg/network"
)

// WeaklyConnectedComponents returns the node sets of net's weakly-connected
// components: BFS over the graph with edge directions ignored. Each
// component is in display order; components are ordered by their first node.
func WeaklyConnectedComponents(net *network.Network) [][]network.ID {
	visited := make(map[network.ID]bool)
	var components [][]network.ID

	for _, start := range net.Nodes() {
		if visited[start] {
			continue
		}

		var component []network.ID
		queue := []network.ID{start}
		visited[start] = true

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component = append(component, current)

			for _, next := range net.Successors(current) {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
			for _, next := range net.Predecessors(current) {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		network.SortIDs(component)
		components = append(components, component)
	}

	return components
}

// IsWeaklyConnected reports whether net has exactly one weakly-connected
// component. The empty graph is not connected.
func IsWeaklyConnected(net *network.Network) bool {
	return len(WeaklyConnectedComponents(net)) == 1
}
