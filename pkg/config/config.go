// Package config loads and validates the modeling session configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate = validator.New()

// Duration wraps time.Duration so YAML can carry "30m"-style strings.
type Duration time.Duration

// UnmarshalYAML accepts a duration string or a nanosecond integer.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}
	return fmt.Errorf("invalid duration node %q", value.Value)
}

// String renders the duration in time.Duration notation.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config describes a basin modeling session.
type Config struct {
	// TopologyPath is the drainage-network topology file.
	TopologyPath string `yaml:"topology_path" validate:"required"`
	// GaugeDictPath maps gauge ids to network nodes; optional for
	// workflows that never touch gauges.
	GaugeDictPath string `yaml:"gauge_dict_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	Timeseries TimeseriesConfig `yaml:"timeseries"`
}

// TimeseriesConfig controls placeholder time-series stitching.
type TimeseriesConfig struct {
	// RootPath is the directory receiving one sub-directory per node.
	RootPath string `yaml:"root_path"`
	// Start and End bound the series, formatted "2006-01-02 15:04".
	// Checked in Validate: the layout has a space, which validator tag
	// params cannot carry.
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	// Step is the sampling interval.
	Step Duration `yaml:"step"`
	// NaN is the no-data marker written into every row.
	NaN float64 `yaml:"nan"`
}

// Default returns a config with the conventional defaults applied.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Timeseries: TimeseriesConfig{
			Step: Duration(time.Hour),
			NaN:  -9999.0,
		},
	}
}

// Load reads a YAML config file, applies defaults for absent fields and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config against its struct tags plus the cross-field
// rules the tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Timeseries.Step < 0 {
		return fmt.Errorf("timeseries step must be positive, got %s", c.Timeseries.Step)
	}

	// Both bounds or neither.
	if (c.Timeseries.Start == "") != (c.Timeseries.End == "") {
		return fmt.Errorf("timeseries start and end must be set together")
	}
	if c.Timeseries.Start != "" {
		start, end, err := c.Timeseries.Window()
		if err != nil {
			return err
		}
		if !end.After(start) {
			return fmt.Errorf("timeseries end %s is not after start %s",
				c.Timeseries.End, c.Timeseries.Start)
		}
	}
	return nil
}

// Window parses the configured series bounds.
func (t *TimeseriesConfig) Window() (start, end time.Time, err error) {
	const layout = "2006-01-02 15:04"
	start, err = time.Parse(layout, t.Start)
	if err != nil {
		return start, end, fmt.Errorf("timeseries start: %w", err)
	}
	end, err = time.Parse(layout, t.End)
	if err != nil {
		return start, end, fmt.Errorf("timeseries end: %w", err)
	}
	return start, end, nil
}
