package algorithms

import (
	"github.com/geoframe/basinet/pkg/network"
)

// UpstreamNodes returns the breadth-first closure of node over reversed
// edges: node itself plus every ancestor feeding into it, in discovery
// order. Fails when node is absent from net.
func UpstreamNodes(net *network.Network, node network.ID) ([]network.ID, error) {
	if !net.HasNode(node) {
		return nil, &network.TopologyError{Op: "upstream", Node: node, Cause: network.ErrNodeNotFound}
	}

	visited := map[network.ID]bool{node: true}
	order := []network.ID{node}
	queue := []network.ID{node}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, prev := range net.Predecessors(current) {
			if !visited[prev] {
				visited[prev] = true
				order = append(order, prev)
				queue = append(queue, prev)
			}
		}
	}

	return order, nil
}

// Upstream returns the sub-network feeding into node, inclusive of node
// itself: the induced subgraph over the reverse-BFS closure, as a fresh
// copy with edge directions preserved.
func Upstream(net *network.Network, node network.ID) (*network.Network, error) {
	nodes, err := UpstreamNodes(net, node)
	if err != nil {
		return nil, err
	}
	return net.Subgraph(nodes), nil
}

// Downstream returns the induced subgraph over every node of net that is
// not upstream of node, as a fresh copy. For a tree this is node's own
// downstream path plus all sibling sub-trees not rooted through node: the
// complement of Upstream, not the strict downstream path. Fails when node
// is absent from net.
func Downstream(net *network.Network, node network.ID) (*network.Network, error) {
	if !net.HasNode(node) {
		return nil, &network.TopologyError{Op: "downstream", Node: node, Cause: network.ErrNodeNotFound}
	}

	up, err := UpstreamNodes(net, node)
	if err != nil {
		return nil, err
	}
	upstream := make(map[network.ID]bool, len(up))
	for _, id := range up {
		upstream[id] = true
	}

	var rest []network.ID
	for _, id := range net.Nodes() {
		if !upstream[id] {
			rest = append(rest, id)
		}
	}
	return net.Subgraph(rest), nil
}
