package cliapp

import (
	"strings"
	"testing"

	"github.com/da11an/repo-query-surface/internal/config"
)

func TestApplyModeOptions_RejectsTrendWithLiveModes(t *testing.T) {
	opts := &cliOptions{trend: true, watch: true}
	cfg := loadTestConfig(t, "")

	err := applyModeOptions(opts, cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "cannot be combined") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyModeOptions_RejectsMultipleRoots(t *testing.T) {
	opts := &cliOptions{args: []string{"./a", "./b"}}
	cfg := loadTestConfig(t, "")

	err := applyModeOptions(opts, cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "at most one repository root") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyModeOptions_RejectsUnknownLanguage(t *testing.T) {
	opts := &cliOptions{lang: "cobol"}
	cfg := loadTestConfig(t, "")

	err := applyModeOptions(opts, cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unknown language") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyModeOptions_OverridesLanguageAndFormat(t *testing.T) {
	opts := &cliOptions{lang: "Go", format: "TSV", top: 10}
	cfg := loadTestConfig(t, "")

	if err := applyModeOptions(opts, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analysis.Language != "go" {
		t.Errorf("expected language go, got %q", cfg.Analysis.Language)
	}
	if cfg.Report.Format != "tsv" {
		t.Errorf("expected format tsv, got %q", cfg.Report.Format)
	}
	if cfg.Report.TopLimit != 10 {
		t.Errorf("expected top limit 10, got %d", cfg.Report.TopLimit)
	}
}

func TestApplyModeOptions_RejectsUnknownFormat(t *testing.T) {
	opts := &cliOptions{format: "pdf"}
	cfg := loadTestConfig(t, "")

	err := applyModeOptions(opts, cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := &config.Config{}
	cfg.History.Path = "/tmp/custom/history.db"
	if got := historyPath(cfg); got != "/tmp/custom/history.db" {
		t.Errorf("expected configured path, got %q", got)
	}

	cfg.History.Path = ""
	if got := historyPath(cfg); !strings.HasSuffix(got, "history.db") {
		t.Errorf("expected state-dir fallback ending in history.db, got %q", got)
	}
}

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := parseOptions(nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.configPath != config.DefaultPath {
		t.Errorf("expected default config path %q, got %q", config.DefaultPath, opts.configPath)
	}
	if opts.watch || opts.ui || opts.serve || opts.history || opts.trend {
		t.Error("expected all mode flags off by default")
	}
}

func TestParseOptions_ParsesFlagsAndRoot(t *testing.T) {
	opts, err := parseOptions([]string{"-format", "json", "-watch", "-top", "5", "./src"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.format != "json" || !opts.watch || opts.top != 5 {
		t.Errorf("unexpected options: %+v", opts)
	}
	if len(opts.args) != 1 || opts.args[0] != "./src" {
		t.Errorf("expected positional root ./src, got %v", opts.args)
	}
}
