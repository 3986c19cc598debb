// Package timeseries stitches per-node placeholder series for a drainage
// network, in the OMS table format downstream simulation tooling reads.
package timeseries

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/geoframe/basinet/pkg/logging"
	"github.com/geoframe/basinet/pkg/network"
)

// timeLayout is the timestamp format of OMS table rows.
const timeLayout = "2006-01-02 15:04"

// Options bound and sample the generated series.
type Options struct {
	Start time.Time
	End   time.Time
	Step  time.Duration
	NaN   float64 // no-data marker, conventionally -9999.0
}

// WritePlaceholders writes one no-data series per node of net, covering
// [Start, End] at Step intervals: <root>/<id>/Nan_<id>.csv. Directories are
// created as needed. Returns the number of files written.
func WritePlaceholders(net *network.Network, root string, opts Options, log logging.Logger) (int, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if opts.Step <= 0 {
		return 0, fmt.Errorf("timeseries step must be positive, got %s", opts.Step)
	}
	if opts.End.Before(opts.Start) {
		return 0, fmt.Errorf("timeseries end %s precedes start %s",
			opts.End.Format(timeLayout), opts.Start.Format(timeLayout))
	}

	written := 0
	for _, node := range net.Nodes() {
		path := filepath.Join(root, string(node), fmt.Sprintf("Nan_%s.csv", node))
		if err := writeSeries(path, string(node), opts); err != nil {
			return written, err
		}
		log.Debug("placeholder series written", logging.Node(string(node)), logging.Path(path))
		written++
	}
	return written, nil
}

// writeSeries emits a single OMS table file for one node.
func writeSeries(path, id string, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating series directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating series file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "@T,table\n")
	fmt.Fprintf(w, "Created,%s\n", time.Now().Format(timeLayout))
	fmt.Fprintf(w, "@H,timestamp,value_%s\n", id)
	fmt.Fprintf(w, "ID,,%s\n", id)
	fmt.Fprintf(w, "Type,,Date,Double\n")
	fmt.Fprintf(w, "Format,,yyyy-MM-dd HH:mm,\n")

	for ts := opts.Start; !ts.After(opts.End); ts = ts.Add(opts.Step) {
		fmt.Fprintf(w, ",%s,%g\n", ts.Format(timeLayout), opts.NaN)
	}
	return w.Flush()
}
