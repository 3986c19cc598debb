package algorithms

import (
	"fmt"
	"strings"

	"github.com/geoframe/basinet/pkg/network"
)

// ViolationKind classifies why a network failed structural validation.
type ViolationKind int

const (
	// HasCycle: the graph contains a cycle.
	HasCycle ViolationKind = iota
	// NotDirected: the graph is not directed. Networks built by this
	// package are always directed, so this is a defensive guard.
	NotDirected
	// NotTree: the graph is not a single weakly-connected tree.
	NotTree
)

// String returns the kind's name.
func (k ViolationKind) String() string {
	switch k {
	case HasCycle:
		return "HasCycle"
	case NotDirected:
		return "NotDirected"
	case NotTree:
		return "NotTree"
	default:
		return "Unknown"
	}
}

// Violation describes a failed validation check with enough detail for a
// caller to report what is wrong, not just that something is. It is
// advisory: callers decide whether to abort.
type Violation struct {
	Kind       ViolationKind
	Cycle      []network.Edge // offending edge sequence, for HasCycle
	Components [][]network.ID // component membership, for NotTree with >1 component
	Detail     string
}

// String renders the violation with its diagnostics.
func (v *Violation) String() string {
	var sb strings.Builder
	sb.WriteString(v.Kind.String())
	if v.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(v.Detail)
	}
	if len(v.Cycle) > 0 {
		sb.WriteString(" [")
		for i, e := range v.Cycle {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.String())
		}
		sb.WriteString("]")
	}
	if len(v.Components) > 1 {
		sb.WriteString(fmt.Sprintf(" (%d components: %v)", len(v.Components), v.Components))
	}
	return sb.String()
}

// Validate checks that net is a directed acyclic out-tree with a single
// weakly-connected component. Checks run in a fixed order and the first
// failure wins:
//
//  1. acyclicity, reporting the offending cycle's edges;
//  2. directedness (defensive, unreachable for networks built here);
//  3. tree shape, reporting component membership when the graph is
//     disconnected.
//
// Returns nil when every check passes.
func Validate(net *network.Network) *Violation {
	if cycle := FindCycle(net); cycle != nil {
		return &Violation{
			Kind:   HasCycle,
			Cycle:  cycle,
			Detail: "the graph is not acyclic",
		}
	}

	if !net.Directed() {
		detail := "the graph is not a connected graph, so it cannot be a tree"
		if IsWeaklyConnected(net) {
			detail = "the graph is connected but contains cycles"
		}
		return &Violation{Kind: NotDirected, Detail: detail}
	}

	components := WeaklyConnectedComponents(net)
	if len(components) != 1 {
		v := &Violation{
			Kind:   NotTree,
			Detail: "the directed graph is not weakly connected, so it cannot be a directed tree",
		}
		if len(components) > 1 {
			v.Components = components
		}
		return v
	}
	if net.EdgeCount() != net.NodeCount()-1 {
		return &Violation{
			Kind: NotTree,
			Detail: fmt.Sprintf("the directed graph is weakly connected but has %d edges for %d nodes",
				net.EdgeCount(), net.NodeCount()),
		}
	}

	return nil
}
