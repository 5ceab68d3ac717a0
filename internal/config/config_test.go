// # internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/da11an/repo-query-surface/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rqsmap.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[analysis]
language = "python"

[exclude]
dirs = [".git"]
files = ["*.log"]

[report]
show_all_threshold = 10
top_limit = 5
format = "tsv"

[watch]
debounce_ms = 200
min_interval_ms = 2000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Analysis.Language != "python" {
		t.Errorf("Expected language python, got %s", cfg.Analysis.Language)
	}
	if cfg.Report.ShowAllThreshold != 10 || cfg.Report.TopLimit != 5 {
		t.Errorf("Unexpected report thresholds: %+v", cfg.Report)
	}
	if cfg.Report.Format != "tsv" {
		t.Errorf("Expected format tsv, got %s", cfg.Report.Format)
	}
	if cfg.Watch.Debounce() != 200*time.Millisecond {
		t.Errorf("Expected debounce 200ms, got %v", cfg.Watch.Debounce())
	}
	// Unset sections keep defaults.
	if cfg.Centrality.SampleThreshold != 120 {
		t.Errorf("Expected default sample threshold 120, got %d", cfg.Centrality.SampleThreshold)
	}
	if cfg.Report.LayerPreview != 6 {
		t.Errorf("Expected default layer preview 6, got %d", cfg.Report.LayerPreview)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Analysis.Language != "auto" {
		t.Errorf("Expected language auto, got %s", cfg.Analysis.Language)
	}
	if cfg.Report.ShowAllThreshold != 50 || cfg.Report.TopLimit != 50 {
		t.Errorf("Expected 50/50 defaults, got %+v", cfg.Report)
	}
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("Expected default exclude dirs")
	}
	if cfg.Serve.Addr != "127.0.0.1:7788" {
		t.Errorf("Expected default serve addr, got %s", cfg.Serve.Addr)
	}
}

func TestLoadMissingDefaultPath(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	cfg, err := Load(DefaultPath)
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if cfg.Report.TopLimit != 50 {
		t.Errorf("Expected defaults, got %+v", cfg.Report)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("ExplicitMissingFile", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("Expected error for explicitly named missing file")
		}
	})

	t.Run("MalformedTOML", func(t *testing.T) {
		path := writeConfig(t, "bad = toml = format")
		if _, err := Load(path); err == nil {
			t.Error("Expected error for malformed TOML")
		}
	})

	t.Run("UnknownLanguage", func(t *testing.T) {
		path := writeConfig(t, "[analysis]\nlanguage = \"cobol\"\n")
		_, err := Load(path)
		if !errors.IsCode(err, errors.CodeConfigInvalid) {
			t.Errorf("Expected CONFIG_INVALID, got %v", err)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		path := writeConfig(t, "[report]\nformat = \"pdf\"\n")
		_, err := Load(path)
		if !errors.IsCode(err, errors.CodeConfigInvalid) {
			t.Errorf("Expected CONFIG_INVALID, got %v", err)
		}
	})
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	t.Setenv("RQS_SHOW_ALL", "25")
	t.Setenv("RQS_TOP_LIMIT", "not-a-number")
	ApplyEnvOverrides(cfg)

	if cfg.Report.ShowAllThreshold != 25 {
		t.Errorf("Expected override 25, got %d", cfg.Report.ShowAllThreshold)
	}
	// Non-numeric override falls back to the default, never fails.
	if cfg.Report.TopLimit != 50 {
		t.Errorf("Expected default 50 after bad override, got %d", cfg.Report.TopLimit)
	}
}
