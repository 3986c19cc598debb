// Package basin ties the topology engine together into modeling workflows.
// All state lives in an explicit Session: configuration, log sink and
// metrics are created at setup and passed down, never held in package
// globals.
package basin

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/geoframe/basinet/pkg/algorithms"
	"github.com/geoframe/basinet/pkg/config"
	"github.com/geoframe/basinet/pkg/gauges"
	"github.com/geoframe/basinet/pkg/logging"
	"github.com/geoframe/basinet/pkg/metrics"
	"github.com/geoframe/basinet/pkg/network"
)

// ErrInvalidNetwork reports that a topology failed structural validation;
// the diagnostics were already logged.
var ErrInvalidNetwork = errors.New("network failed structural validation")

// Session is the context for one modeling run.
type Session struct {
	id        string
	cfg       *config.Config
	log       logging.Logger
	metrics   *metrics.Registry
	annotator *gauges.Annotator
}

// NewSession creates a session from cfg. A nil log gets a stderr JSON
// logger at the configured level.
func NewSession(cfg *config.Config, log logging.Logger) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	id := uuid.NewString()
	if log == nil {
		log = logging.NewStderrLogger(logging.ParseLevel(cfg.LogLevel))
	}
	log = log.With(logging.String("session", id))

	s := &Session{
		id:        id,
		cfg:       cfg,
		log:       log,
		metrics:   metrics.NewRegistry(),
		annotator: gauges.NewAnnotator(log),
	}
	s.log.Debug("session created")
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Logger returns the session's log sink.
func (s *Session) Logger() logging.Logger { return s.log }

// Metrics returns the session's metrics registry.
func (s *Session) Metrics() *metrics.Registry { return s.metrics }

// Config returns the session's configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Close tears the session down. The session must not be used afterwards.
func (s *Session) Close() {
	s.log.Debug("session closed")
}

// GetNetwork loads a topology file and gates it through validation. Load
// failures are returned to the caller; a structural violation is logged
// with its diagnostics and reported as ErrInvalidNetwork, leaving the
// decision to abort with the caller.
func (s *Session) GetNetwork(path string) (*network.Network, error) {
	net, err := network.Load(path)
	if err != nil {
		s.metrics.RecordTopologyLoad("error", 0, 0)
		return nil, err
	}
	s.metrics.RecordTopologyLoad("ok", net.NodeCount(), net.EdgeCount())

	if v := algorithms.Validate(net); v != nil {
		s.metrics.RecordValidation(v.Kind.String())
		s.log.Error("topology failed validation",
			logging.Path(path), logging.String("violation", v.String()))
		return nil, ErrInvalidNetwork
	}
	s.metrics.RecordValidation("ok")
	s.log.Info("network loaded",
		logging.Path(path), logging.Count(net.NodeCount()))
	return net, nil
}

// Upstream derives the sub-network feeding into node.
func (s *Session) Upstream(net *network.Network, node network.ID) (*network.Network, error) {
	started := time.Now()
	sub, err := algorithms.Upstream(net, node)
	s.metrics.RecordSubnetworkBuild("upstream", statusOf(err), time.Since(started))
	return sub, err
}

// Downstream derives the sub-network of everything not upstream of node.
func (s *Session) Downstream(net *network.Network, node network.ID) (*network.Network, error) {
	started := time.Now()
	sub, err := algorithms.Downstream(net, node)
	s.metrics.RecordSubnetworkBuild("downstream", statusOf(err), time.Since(started))
	return sub, err
}

// GaugeSubnetwork derives the annotated sub-network governed by gaugeID.
// The gauge map is pruned in place to the entries the sub-network retains.
func (s *Session) GaugeSubnetwork(net *network.Network, gaugeMap network.GaugeMap, gaugeID string, isCalibration bool) (*network.Network, error) {
	started := time.Now()
	sub, err := s.annotator.BuildSubnetwork(net, gaugeMap, gaugeID, isCalibration)
	s.metrics.RecordSubnetworkBuild("gauge", statusOf(err), time.Since(started))
	if err == nil && !sub.HasNode(network.Sink) {
		s.metrics.RecordIntegrityWarning()
	}
	return sub, err
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
