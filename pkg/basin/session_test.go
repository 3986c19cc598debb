package basin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoframe/basinet/pkg/config"
	"github.com/geoframe/basinet/pkg/logging"
	"github.com/geoframe/basinet/pkg/network"
)

func newTestSession() *Session {
	return NewSession(config.Default(), logging.NewNopLogger())
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSession_Identity(t *testing.T) {
	a := newTestSession()
	defer a.Close()
	b := newTestSession()
	defer b.Close()

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestGetNetwork_Valid(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	path := writeFixture(t, "topo.txt", "1 2\n2 3\n3 4\n2 5\n")
	net, err := s.GetNetwork(path)
	require.NoError(t, err)
	require.NotNil(t, net)
	assert.Equal(t, 5, net.NodeCount())
}

func TestGetNetwork_ValidationGate(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	// A cycle: no usable network comes back.
	path := writeFixture(t, "topo.txt", "1 2\n2 3\n3 1\n")
	net, err := s.GetNetwork(path)
	assert.Nil(t, net)
	assert.ErrorIs(t, err, ErrInvalidNetwork)
}

func TestGetNetwork_MalformedIsHardError(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	path := writeFixture(t, "topo.txt", "1 2\n3\n")
	_, err := s.GetNetwork(path)
	assert.ErrorIs(t, err, network.ErrMalformedInput)
	assert.False(t, errors.Is(err, ErrInvalidNetwork))
}

func TestSessionTraversals(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	path := writeFixture(t, "topo.txt", "1 2\n2 3\n3 4\n2 5\n")
	net, err := s.GetNetwork(path)
	require.NoError(t, err)

	up, err := s.Upstream(net, "2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []network.ID{"1", "2"}, up.Nodes())

	down, err := s.Downstream(net, "2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []network.ID{"3", "4", "5"}, down.Nodes())

	_, err = s.Upstream(net, "99")
	assert.ErrorIs(t, err, network.ErrNodeNotFound)
}

func TestGaugeSubnetwork_EndToEnd(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	path := writeFixture(t, "topo.txt", "1 2\n2 3\n3 4\n2 5\n")
	net, err := s.GetNetwork(path)
	require.NoError(t, err)

	gaugeMap := network.GaugeMap{"g1": "1", "g2": "2", "g3": "3"}
	sub, err := s.GaugeSubnetwork(net, gaugeMap, "g2", false)
	require.NoError(t, err)

	assert.True(t, sub.HasNode(network.Sink))
	assert.True(t, sub.HasEdge("2", network.Sink))
	assert.True(t, sub.Attrs("2").Calibrate, "the outlet always calibrates")
	assert.NotContains(t, gaugeMap, "g3", "gauge outside the sub-network must be pruned")
}

func TestOrderedGaugeIDs(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	dir := t.TempDir()
	topo := filepath.Join(dir, "topo.txt")
	dict := filepath.Join(dir, "gauges.txt")
	require.NoError(t, os.WriteFile(topo, []byte("1 2\n2 3\n3 4\n2 5\n"), 0o644))
	require.NoError(t, os.WriteFile(dict, []byte("gA 3\ngB 1\ngC 2\n"), 0o644))

	ordered, err := s.OrderedGaugeIDs(topo, dict)
	require.NoError(t, err)
	require.Len(t, ordered, 3)

	// 1 drains into 2 drains into 3: gB before gC before gA.
	assert.Equal(t, []string{"gB", "gC", "gA"}, ordered)
}

func TestOrderedGaugeIDs_InvalidTopology(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	dir := t.TempDir()
	topo := filepath.Join(dir, "topo.txt")
	dict := filepath.Join(dir, "gauges.txt")
	require.NoError(t, os.WriteFile(topo, []byte("1 2\n2 1\n"), 0o644))
	require.NoError(t, os.WriteFile(dict, []byte("gA 1\n"), 0o644))

	_, err := s.OrderedGaugeIDs(topo, dict)
	assert.ErrorIs(t, err, ErrInvalidNetwork)
}

func TestSimplifyToStar(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	dir := t.TempDir()
	topo := filepath.Join(dir, "topo.txt")
	out := filepath.Join(dir, "star.txt")
	require.NoError(t, os.WriteFile(topo, []byte("1 2\n2 3\n4 3\n"), 0o644))

	require.NoError(t, s.SimplifyToStar(topo, out))

	star, err := network.Load(out)
	require.NoError(t, err)
	for _, node := range star.Nodes() {
		if node == network.Sink {
			continue
		}
		assert.True(t, star.HasEdge(node, network.Sink),
			"node %s must point at the sink", node)
		assert.Equal(t, 1, star.OutDegree(node))
	}
}

func TestStitchTimeseries(t *testing.T) {
	cfg := config.Default()
	cfg.Timeseries.RootPath = t.TempDir()
	cfg.Timeseries.Start = "2021-01-01 00:00"
	cfg.Timeseries.End = "2021-01-01 02:00"
	cfg.Timeseries.Step = config.Duration(time.Hour)

	s := NewSession(cfg, logging.NewNopLogger())
	defer s.Close()

	net := network.New()
	net.AddEdge("1", "2")

	require.NoError(t, s.StitchTimeseries(net))

	for _, id := range []string{"1", "2"} {
		_, err := os.Stat(filepath.Join(cfg.Timeseries.RootPath, id, "Nan_"+id+".csv"))
		assert.NoError(t, err, "series for node %s", id)
	}
}
