package algorithms

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/geoframe/basinet/pkg/network"
)

// randomTree builds a random out-tree with size nodes: every node except the
// root gets exactly one downstream receiver among the earlier nodes.
func randomTree(size int, seed int64) *network.Network {
	r := rand.New(rand.NewSource(seed))
	net := network.New()
	net.AddNode("1")
	for i := 2; i <= size; i++ {
		parent := r.Intn(i-1) + 1
		net.AddEdge(network.ID(strconv.Itoa(i)), network.ID(strconv.Itoa(parent)))
	}
	return net
}

// TestTreeInvariants uses property-based testing to verify the traversal and
// ordering invariants over random trees. These properties should ALWAYS hold
// for any valid out-tree.
func TestTreeInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: random trees pass validation.
	properties.Property("random trees validate", prop.ForAll(
		func(size int, seed int64) bool {
			return Validate(randomTree(size, seed)) == nil
		},
		gen.IntRange(1, 60),
		gen.Int64(),
	))

	// Property 2: upstream and downstream partition the node set around any
	// pivot, with the pivot counted upstream only.
	properties.Property("upstream/downstream partition the network", prop.ForAll(
		func(size int, seed int64, pivotSeed int64) bool {
			net := randomTree(size, seed)
			nodes := net.Nodes()
			pivot := nodes[rand.New(rand.NewSource(pivotSeed)).Intn(len(nodes))]

			up, err := Upstream(net, pivot)
			if err != nil {
				return false
			}
			down, err := Downstream(net, pivot)
			if err != nil {
				return false
			}
			if !up.HasNode(pivot) || down.HasNode(pivot) {
				return false
			}
			if up.NodeCount()+down.NodeCount() != net.NodeCount() {
				return false
			}
			for _, id := range up.Nodes() {
				if down.HasNode(id) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 60),
		gen.Int64(),
		gen.Int64(),
	))

	// Property 3: topological order respects every edge.
	properties.Property("topological order respects edges", prop.ForAll(
		func(size int, seed int64) bool {
			net := randomTree(size, seed)
			order, err := TopologicalSort(net)
			if err != nil {
				return false
			}
			pos := make(map[network.ID]int, len(order))
			for i, id := range order {
				pos[id] = i
			}
			for _, e := range net.Edges() {
				if pos[e.From] >= pos[e.To] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 60),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
