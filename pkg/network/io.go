package network

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a topology file and returns the raw network it describes. Each
// non-empty line holds two whitespace-separated tokens "child parent" and
// becomes the directed edge child -> parent. No structural validation is
// performed here.
//
// A line with fewer than two tokens fails with ErrMalformedInput and no
// partial network is returned.
func Load(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TopologyError{Op: "load", Path: path, Cause: err}
	}
	defer f.Close()

	net, err := Parse(f)
	if err != nil {
		if te, ok := err.(*TopologyError); ok {
			te.Path = path
		}
		return nil, err
	}
	return net, nil
}

// Parse reads edge lines from r. See Load for the format.
func Parse(r io.Reader) (*Network, error) {
	net := New()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		tokens := strings.Fields(text)
		if len(tokens) < 2 {
			return nil, &TopologyError{Op: "load", Line: line, Cause: ErrMalformedInput}
		}
		net.AddEdge(ID(tokens[0]), ID(tokens[1]))
	}
	if err := scanner.Err(); err != nil {
		return nil, &TopologyError{Op: "load", Cause: err}
	}
	return net, nil
}

// Write serializes net to a topology file at path. For every node except
// the sink it emits one line "node neighbour", where neighbour is the node's
// first outgoing neighbour in display order, or the sink when it has none.
func Write(net *Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &TopologyError{Op: "write", Path: path, Cause: err}
	}
	defer f.Close()

	if err := WriteTo(net, f); err != nil {
		return &TopologyError{Op: "write", Path: path, Cause: err}
	}
	return nil
}

// WriteTo serializes net as edge lines to w. See Write for the format.
func WriteTo(net *Network, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, node := range net.Nodes() {
		if node == Sink {
			continue
		}
		neighbour, ok := net.FirstSuccessor(node)
		if !ok {
			neighbour = Sink
		}
		if _, err := fmt.Fprintf(bw, "%s %s\n", node, neighbour); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadGaugeDictionary reads a gauge dictionary file: one entry per line, two
// whitespace-separated tokens "gauge_id node_id". Later entries for the same
// gauge overwrite earlier ones.
func LoadGaugeDictionary(path string) (GaugeMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TopologyError{Op: "load dictionary", Path: path, Cause: err}
	}
	defer f.Close()

	gauges, err := ParseGaugeDictionary(f)
	if err != nil {
		if te, ok := err.(*TopologyError); ok {
			te.Path = path
		}
		return nil, err
	}
	return gauges, nil
}

// ParseGaugeDictionary reads gauge dictionary lines from r.
func ParseGaugeDictionary(r io.Reader) (GaugeMap, error) {
	gauges := make(GaugeMap)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		tokens := strings.Fields(text)
		if len(tokens) < 2 {
			return nil, &TopologyError{Op: "load dictionary", Line: line, Cause: ErrMalformedInput}
		}
		gauges[tokens[0]] = ID(tokens[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, &TopologyError{Op: "load dictionary", Cause: err}
	}
	return gauges, nil
}
