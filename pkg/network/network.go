package network

import (
	"sort"
	"strconv"
)

// ID is an opaque node identifier. Identifiers are compared as tokens: no
// numeric semantics are assumed beyond equality and hashing, though display
// ordering sorts numeric tokens numerically so "10" follows "9".
type ID string

// Sink is the virtual terminal node every outlet drains into. It carries no
// outgoing edge and is never written out as a source node.
const Sink ID = "0"

// Attributes holds the per-node annotation set by the gauge engine.
// A zero Attributes means "not annotated yet".
type Attributes struct {
	Gauge     string // governing gauge id, empty for nodes above any gauge
	Calibrate bool   // true only at the calibration outlet of the governing gauge
}

// Edge is a directed arc: From drains into To.
type Edge struct {
	From ID
	To   ID
}

// String returns the edge in "from->to" form for diagnostics.
func (e Edge) String() string {
	return string(e.From) + "->" + string(e.To)
}

// Network is a directed graph over sub-basin identifiers. Duplicate edges
// collapse; self-loops are representable (the validator rejects them as
// cycles). Not safe for concurrent mutation.
type Network struct {
	succ  map[ID]map[ID]struct{}
	pred  map[ID]map[ID]struct{}
	attrs map[ID]Attributes
}

// New creates an empty directed network.
func New() *Network {
	return &Network{
		succ:  make(map[ID]map[ID]struct{}),
		pred:  make(map[ID]map[ID]struct{}),
		attrs: make(map[ID]Attributes),
	}
}

// Directed reports whether the network is a directed graph. Networks built
// through this package are always directed; the method exists so the
// validator's directedness guard has something to ask.
func (n *Network) Directed() bool {
	return n.succ != nil
}

// AddNode ensures id is present, with no edges.
func (n *Network) AddNode(id ID) {
	if _, ok := n.succ[id]; !ok {
		n.succ[id] = make(map[ID]struct{})
		n.pred[id] = make(map[ID]struct{})
	}
}

// AddEdge inserts the directed edge from -> to, creating either endpoint as
// needed. Adding an edge that already exists is a no-op.
func (n *Network) AddEdge(from, to ID) {
	n.AddNode(from)
	n.AddNode(to)
	n.succ[from][to] = struct{}{}
	n.pred[to][from] = struct{}{}
}

// HasNode reports whether id is present.
func (n *Network) HasNode(id ID) bool {
	_, ok := n.succ[id]
	return ok
}

// HasEdge reports whether the directed edge from -> to is present.
func (n *Network) HasEdge(from, to ID) bool {
	_, ok := n.succ[from][to]
	return ok
}

// RemoveNode deletes id and all incident edges. Removing an absent node is a
// no-op.
func (n *Network) RemoveNode(id ID) {
	if !n.HasNode(id) {
		return
	}
	for to := range n.succ[id] {
		delete(n.pred[to], id)
	}
	for from := range n.pred[id] {
		delete(n.succ[from], id)
	}
	delete(n.succ, id)
	delete(n.pred, id)
	delete(n.attrs, id)
}

// RemoveNodes deletes every listed node.
func (n *Network) RemoveNodes(ids []ID) {
	for _, id := range ids {
		n.RemoveNode(id)
	}
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int {
	return len(n.succ)
}

// EdgeCount returns the number of directed edges.
func (n *Network) EdgeCount() int {
	total := 0
	for _, out := range n.succ {
		total += len(out)
	}
	return total
}

// Nodes returns every node in display order.
func (n *Network) Nodes() []ID {
	ids := make([]ID, 0, len(n.succ))
	for id := range n.succ {
		ids = append(ids, id)
	}
	SortIDs(ids)
	return ids
}

// Edges returns every directed edge, ordered by source then target.
func (n *Network) Edges() []Edge {
	edges := make([]Edge, 0, n.EdgeCount())
	for _, from := range n.Nodes() {
		for _, to := range n.Successors(from) {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// Successors returns the nodes id drains into, in display order. A valid
// tree has at most one.
func (n *Network) Successors(id ID) []ID {
	out := n.succ[id]
	if len(out) == 0 {
		return nil
	}
	ids := make([]ID, 0, len(out))
	for to := range out {
		ids = append(ids, to)
	}
	SortIDs(ids)
	return ids
}

// Predecessors returns the nodes draining into id, in display order.
func (n *Network) Predecessors(id ID) []ID {
	in := n.pred[id]
	if len(in) == 0 {
		return nil
	}
	ids := make([]ID, 0, len(in))
	for from := range in {
		ids = append(ids, from)
	}
	SortIDs(ids)
	return ids
}

// OutDegree returns the number of outgoing edges of id.
func (n *Network) OutDegree(id ID) int {
	return len(n.succ[id])
}

// InDegree returns the number of incoming edges of id.
func (n *Network) InDegree(id ID) int {
	return len(n.pred[id])
}

// FirstSuccessor returns the first outgoing neighbour of id in display
// order, or false if id has none. In a valid tree this is the node's only
// downstream receiver, so the choice is deterministic.
func (n *Network) FirstSuccessor(id ID) (ID, bool) {
	succs := n.Successors(id)
	if len(succs) == 0 {
		return "", false
	}
	return succs[0], true
}

// Attrs returns id's annotation. The zero value is returned for
// un-annotated or absent nodes.
func (n *Network) Attrs(id ID) Attributes {
	return n.attrs[id]
}

// SetAttrs replaces id's annotation. Setting attributes on an absent node is
// a no-op.
func (n *Network) SetAttrs(id ID, a Attributes) {
	if !n.HasNode(id) {
		return
	}
	n.attrs[id] = a
}

// Subgraph returns a fresh network induced over keep: every listed node that
// exists, plus every edge whose endpoints both survive. Attributes are
// copied. The receiver is not modified.
func (n *Network) Subgraph(keep []ID) *Network {
	sub := New()
	kept := make(map[ID]struct{}, len(keep))
	for _, id := range keep {
		if n.HasNode(id) {
			kept[id] = struct{}{}
			sub.AddNode(id)
			if a, ok := n.attrs[id]; ok {
				sub.attrs[id] = a
			}
		}
	}
	for id := range kept {
		for to := range n.succ[id] {
			if _, ok := kept[to]; ok {
				sub.AddEdge(id, to)
			}
		}
	}
	return sub
}

// Clone returns a deep copy of the network.
func (n *Network) Clone() *Network {
	return n.Subgraph(n.Nodes())
}

// SortIDs orders identifiers for display: tokens that parse as integers
// sort numerically and precede non-numeric tokens, which sort
// lexicographically.
func SortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool {
		return CompareIDs(ids[i], ids[j]) < 0
	})
}

// CompareIDs returns -1, 0 or 1 ordering a before b per SortIDs.
func CompareIDs(a, b ID) int {
	ai, aerr := strconv.ParseInt(string(a), 10, 64)
	bi, berr := strconv.ParseInt(string(b), 10, 64)
	switch {
	case aerr == nil && berr == nil:
		if ai < bi {
			return -1
		}
		if ai > bi {
			return 1
		}
		return 0
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	}
}
