package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// TestLoad_AppliesDefaults tests defaulting of absent fields
func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "topology_path: topo.txt\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.Timeseries.Step != Duration(time.Hour) {
		t.Errorf("Expected default step 1h, got %s", cfg.Timeseries.Step)
	}
	if cfg.Timeseries.NaN != -9999.0 {
		t.Errorf("Expected default NaN -9999, got %v", cfg.Timeseries.NaN)
	}
}

// TestLoad_Full tests a fully populated config
func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `topology_path: topo.txt
gauge_dict_path: gauges.txt
log_level: debug
timeseries:
  root_path: out
  start: "2021-01-01 00:00"
  end: "2021-02-01 00:00"
  step: 30m
  nan: -999.0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timeseries.Step != Duration(30*time.Minute) {
		t.Errorf("Expected step 30m, got %s", cfg.Timeseries.Step)
	}

	start, end, err := cfg.Timeseries.Window()
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if !end.After(start) {
		t.Error("Parsed window is inverted")
	}
}

// TestValidate_MissingTopology tests the required-field rule
func TestValidate_MissingTopology(t *testing.T) {
	path := writeConfig(t, "log_level: info\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected a validation error for missing topology_path")
	}
}

// TestValidate_BadLogLevel tests the oneof rule
func TestValidate_BadLogLevel(t *testing.T) {
	path := writeConfig(t, "topology_path: t.txt\nlog_level: loud\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected a validation error for an unknown log level")
	}
}

// TestValidate_HalfWindow tests the start/end pairing rule
func TestValidate_HalfWindow(t *testing.T) {
	path := writeConfig(t, `topology_path: t.txt
timeseries:
  start: "2021-01-01 00:00"
`)

	if _, err := Load(path); err == nil {
		t.Error("Expected a validation error for start without end")
	}
}

// TestValidate_InvertedWindow tests the end-after-start rule
func TestValidate_InvertedWindow(t *testing.T) {
	path := writeConfig(t, `topology_path: t.txt
timeseries:
  start: "2021-02-01 00:00"
  end: "2021-01-01 00:00"
`)

	if _, err := Load(path); err == nil {
		t.Error("Expected a validation error for an inverted window")
	}
}
