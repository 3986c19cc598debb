package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/geoframe/basinet/pkg/basin"
	"github.com/geoframe/basinet/pkg/config"
	"github.com/geoframe/basinet/pkg/logging"
	"github.com/geoframe/basinet/pkg/network"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "validate":
		runValidate(args)
	case "upstream":
		runTraversal(args, "upstream")
	case "downstream":
		runTraversal(args, "downstream")
	case "subnet":
		runSubnet(args)
	case "order":
		runOrder(args)
	case "star":
		runStar(args)
	case "stitch":
		runStitch(args)
	case "serve-metrics":
		runServeMetrics(args)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := `basinet - drainage-network topology tools

Usage:
  basinet <command> [options]

Available Commands:
  validate       Check that a topology file is a valid drainage tree
  upstream       Extract the sub-network feeding into a node
  downstream     Extract everything not upstream of a node
  subnet         Build the annotated sub-network governed by a gauge
  order          Print gauge ids in drainage order
  star           Flatten a topology into a star around the sink
  stitch         Write placeholder time series for every node
  serve-metrics  Load a topology and expose session metrics over HTTP
  help           Show this help message

Common Flags:
  -config PATH   YAML session configuration
  -metrics       Dump session metrics to stderr after the run

Use "basinet <command> -h" for command-specific options.
`
	fmt.Print(usage)
}

// cliFlags carries the options every subcommand shares.
type cliFlags struct {
	configPath  string
	logLevel    string
	dumpMetrics bool
}

func registerCommon(fs *flag.FlagSet) *cliFlags {
	cf := &cliFlags{}
	fs.StringVar(&cf.configPath, "config", "", "YAML session configuration")
	fs.StringVar(&cf.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&cf.dumpMetrics, "metrics", false, "dump session metrics to stderr after the run")
	return cf
}

// newSession builds the session for a run, from the config file when given.
func newSession(cf *cliFlags) *basin.Session {
	cfg := config.Default()
	if cf.configPath != "" {
		loaded, err := config.Load(cf.configPath)
		if err != nil {
			fatal(err)
		}
		cfg = loaded
	}
	if cf.logLevel != "" {
		cfg.LogLevel = cf.logLevel
	}

	var log logging.Logger
	if cfg.LogLevel != "" {
		log = logging.NewStderrLogger(logging.ParseLevel(cfg.LogLevel))
	}
	return basin.NewSession(cfg, log)
}

// finish dumps metrics when asked and closes the session.
func finish(s *basin.Session, cf *cliFlags) {
	if cf.dumpMetrics {
		families, err := s.Metrics().GetPrometheusRegistry().Gather()
		if err == nil {
			for _, mf := range families {
				expfmt.MetricFamilyToText(os.Stderr, mf)
			}
		}
	}
	s.Close()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// topologyPath resolves the topology argument, falling back to the config.
func topologyPath(s *basin.Session, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if s.Config().TopologyPath != "" {
		return s.Config().TopologyPath
	}
	fatal(fmt.Errorf("no topology file given (use -topology or a config file)"))
	return ""
}

func gaugeDictPath(s *basin.Session, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if s.Config().GaugeDictPath != "" {
		return s.Config().GaugeDictPath
	}
	fatal(fmt.Errorf("no gauge dictionary given (use -gauges or a config file)"))
	return ""
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	topo := fs.String("topology", "", "topology file")
	cf := registerCommon(fs)
	fs.Parse(args)

	s := newSession(cf)
	defer finish(s, cf)

	if _, err := s.GetNetwork(topologyPath(s, *topo)); err != nil {
		fmt.Println("INVALID")
		fatal(err)
	}
	fmt.Println("OK")
}

func runTraversal(args []string, kind string) {
	fs := flag.NewFlagSet(kind, flag.ExitOnError)
	topo := fs.String("topology", "", "topology file")
	node := fs.String("node", "", "pivot node id")
	out := fs.String("out", "", "write the sub-network to this topology file")
	cf := registerCommon(fs)
	fs.Parse(args)

	if *node == "" {
		fatal(fmt.Errorf("-node is required"))
	}

	s := newSession(cf)
	defer finish(s, cf)

	net, err := s.GetNetwork(topologyPath(s, *topo))
	if err != nil {
		fatal(err)
	}

	var sub *network.Network
	if kind == "upstream" {
		sub, err = s.Upstream(net, network.ID(*node))
	} else {
		sub, err = s.Downstream(net, network.ID(*node))
	}
	if err != nil {
		fatal(err)
	}

	printNetwork(sub, *out)
}

func runSubnet(args []string) {
	fs := flag.NewFlagSet("subnet", flag.ExitOnError)
	topo := fs.String("topology", "", "topology file")
	dict := fs.String("gauges", "", "gauge dictionary file")
	gauge := fs.String("gauge", "", "gauge id to build the sub-network for")
	calibration := fs.Bool("calibration", false, "prune headwaters above nested gauges")
	out := fs.String("out", "", "write the sub-network to this topology file")
	cf := registerCommon(fs)
	fs.Parse(args)

	if *gauge == "" {
		fatal(fmt.Errorf("-gauge is required"))
	}

	s := newSession(cf)
	defer finish(s, cf)

	net, err := s.GetNetwork(topologyPath(s, *topo))
	if err != nil {
		fatal(err)
	}
	gaugeMap, err := network.LoadGaugeDictionary(gaugeDictPath(s, *dict))
	if err != nil {
		fatal(err)
	}

	sub, err := s.GaugeSubnetwork(net, gaugeMap, *gauge, *calibration)
	if err != nil {
		fatal(err)
	}

	for _, id := range sub.Nodes() {
		a := sub.Attrs(id)
		fmt.Printf("%s gauge=%s calibrate=%v\n", id, a.Gauge, a.Calibrate)
	}
	if *out != "" {
		if err := network.Write(sub, *out); err != nil {
			fatal(err)
		}
	}
}

func runOrder(args []string) {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	topo := fs.String("topology", "", "topology file")
	dict := fs.String("gauges", "", "gauge dictionary file")
	cf := registerCommon(fs)
	fs.Parse(args)

	s := newSession(cf)
	defer finish(s, cf)

	ordered, err := s.OrderedGaugeIDs(topologyPath(s, *topo), gaugeDictPath(s, *dict))
	if err != nil {
		fatal(err)
	}
	for _, gauge := range ordered {
		fmt.Println(gauge)
	}
}

func runStar(args []string) {
	fs := flag.NewFlagSet("star", flag.ExitOnError)
	topo := fs.String("topology", "", "topology file")
	out := fs.String("out", "", "output topology file")
	cf := registerCommon(fs)
	fs.Parse(args)

	if *out == "" {
		fatal(fmt.Errorf("-out is required"))
	}

	s := newSession(cf)
	defer finish(s, cf)

	if err := s.SimplifyToStar(topologyPath(s, *topo), *out); err != nil {
		fatal(err)
	}
}

func runStitch(args []string) {
	fs := flag.NewFlagSet("stitch", flag.ExitOnError)
	topo := fs.String("topology", "", "topology file")
	root := fs.String("root", "", "root directory for the series files")
	start := fs.String("start", "", `window start, "2006-01-02 15:04"`)
	end := fs.String("end", "", `window end, "2006-01-02 15:04"`)
	step := fs.Duration("step", 0, "sampling interval")
	cf := registerCommon(fs)
	fs.Parse(args)

	s := newSession(cf)
	defer finish(s, cf)

	cfg := s.Config()
	if *root != "" {
		cfg.Timeseries.RootPath = *root
	}
	if *start != "" {
		cfg.Timeseries.Start = *start
	}
	if *end != "" {
		cfg.Timeseries.End = *end
	}
	if *step != 0 {
		cfg.Timeseries.Step = config.Duration(*step)
	}

	net, err := s.GetNetwork(topologyPath(s, *topo))
	if err != nil {
		fatal(err)
	}
	if err := s.StitchTimeseries(net); err != nil {
		fatal(err)
	}
}

func runServeMetrics(args []string) {
	fs := flag.NewFlagSet("serve-metrics", flag.ExitOnError)
	topo := fs.String("topology", "", "topology file")
	addr := fs.String("addr", ":9090", "listen address for the metrics endpoint")
	cf := registerCommon(fs)
	fs.Parse(args)

	s := newSession(cf)
	defer s.Close()

	if _, err := s.GetNetwork(topologyPath(s, *topo)); err != nil {
		fatal(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		s.Metrics().GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	s.Logger().Info("serving metrics", logging.String("addr", *addr))
	if err := http.ListenAndServe(*addr, mux); err != nil {
		fatal(err)
	}
}

func printNetwork(sub *network.Network, out string) {
	for _, id := range sub.Nodes() {
		fmt.Println(id)
	}
	if out != "" {
		if err := network.Write(sub, out); err != nil {
			fatal(err)
		}
	}
}
