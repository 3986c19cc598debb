package basin

import (
	"time"

	"github.com/geoframe/basinet/pkg/algorithms"
	"github.com/geoframe/basinet/pkg/logging"
	"github.com/geoframe/basinet/pkg/network"
	"github.com/geoframe/basinet/pkg/timeseries"
)

// OrderedGaugeIDs loads the topology and the gauge dictionary, then returns
// the gauge ids reordered so that every gauge whose node drains into
// another gauge's node comes first.
func (s *Session) OrderedGaugeIDs(topologyPath, dictPath string) ([]string, error) {
	gaugeMap, err := network.LoadGaugeDictionary(dictPath)
	if err != nil {
		return nil, err
	}
	net, err := s.GetNetwork(topologyPath)
	if err != nil {
		return nil, err
	}

	nodes, err := algorithms.SortSubset(net, gaugeMap.Nodes())
	if err != nil {
		return nil, err
	}

	inverse := gaugeMap.Inverse()
	ordered := make([]string, 0, len(nodes))
	for _, node := range nodes {
		ordered = append(ordered, inverse[node])
	}
	return ordered, nil
}

// SimplifyToStar loads and validates a topology, then writes a trivial
// placeholder network where every node points directly at the sink.
func (s *Session) SimplifyToStar(topologyPath, outputPath string) error {
	net, err := s.GetNetwork(topologyPath)
	if err != nil {
		return err
	}

	star := network.New()
	for _, node := range net.Nodes() {
		if node != network.Sink {
			star.AddEdge(node, network.Sink)
		}
	}

	if err := network.Write(star, outputPath); err != nil {
		s.metrics.RecordTopologyWrite("error")
		return err
	}
	s.metrics.RecordTopologyWrite("ok")
	s.log.Info("star topology written",
		logging.Path(outputPath), logging.Count(star.NodeCount()))
	return nil
}

// StitchTimeseries writes a placeholder series for every node of net under
// the configured time-series root.
func (s *Session) StitchTimeseries(net *network.Network) error {
	ts := s.cfg.Timeseries
	start, end, err := ts.Window()
	if err != nil {
		return err
	}

	started := time.Now()
	written, err := timeseries.WritePlaceholders(net, ts.RootPath, timeseries.Options{
		Start: start,
		End:   end,
		Step:  time.Duration(ts.Step),
		NaN:   ts.NaN,
	}, s.log)
	if err != nil {
		return err
	}
	s.metrics.RecordStitch(written, time.Since(started))
	s.log.Info("placeholder series stitched",
		logging.Path(ts.RootPath), logging.Count(written))
	return nil
}
