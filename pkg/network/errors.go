package network

import (
	"errors"
	"fmt"
)

// Sentinel errors for the topology engine.
var (
	ErrMalformedInput = errors.New("malformed input line")
	ErrNodeNotFound   = errors.New("node not found")
	ErrUnknownGauge   = errors.New("unknown gauge")
	ErrNotAcyclic     = errors.New("graph is not acyclic")
)

// TopologyError provides structured error information for topology
// operations.
type TopologyError struct {
	Op    string // operation that failed (e.g. "load", "downstream")
	Path  string // file path, if the failure came from file I/O
	Line  int    // 1-based line number for parse failures, 0 otherwise
	Node  ID     // node involved, if any
	Gauge string // gauge id involved, if any
	Cause error  // underlying error
}

// Error implements the error interface.
func (e *TopologyError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s %s:%d: %v", e.Op, e.Path, e.Line, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
	case e.Gauge != "":
		return fmt.Sprintf("%s gauge %q: %v", e.Op, e.Gauge, e.Cause)
	case e.Node != "":
		return fmt.Sprintf("%s node %q: %v", e.Op, e.Node, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *TopologyError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *TopologyError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
