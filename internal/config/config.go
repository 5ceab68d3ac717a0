// # internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/da11an/repo-query-surface/internal/errors"
)

const DefaultPath = "./rqsmap.toml"

type Config struct {
	Analysis   Analysis   `toml:"analysis"`
	Exclude    Exclude    `toml:"exclude"`
	Report     Report     `toml:"report"`
	Centrality Centrality `toml:"centrality"`
	Watch      Watch      `toml:"watch"`
	History    History    `toml:"history"`
	Serve      Serve      `toml:"serve"`
}

type Analysis struct {
	// Language selects the module system to analyze; "auto" picks the
	// profile owning the most scanned files.
	Language string `toml:"language"`
	// Roots are extra source roots appended after the auto-detected ones.
	Roots []string `toml:"roots"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Report struct {
	ShowAllThreshold int    `toml:"show_all_threshold"`
	TopLimit         int    `toml:"top_limit"`
	LayerPreview     int    `toml:"layer_preview"`
	Format           string `toml:"format"`
}

type Centrality struct {
	SampleThreshold int `toml:"sample_threshold"`
}

type Watch struct {
	DebounceMs    int `toml:"debounce_ms"`
	MinIntervalMs int `toml:"min_interval_ms"`
}

type History struct {
	Enabled bool `toml:"enabled"`
	// Path of the sqlite snapshot store; empty means the per-user state dir.
	Path string `toml:"path"`
}

type Serve struct {
	Addr         string `toml:"addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

var knownLanguages = []string{"auto", "python", "javascript", "typescript", "go", "java", "rust", "css", "html"}

var knownFormats = []string{"markdown", "tsv", "dot", "mermaid", "json"}

// Load reads and validates the TOML config at path. A missing file at the
// default location is not an error; defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, errors.Wrap(err, errors.CodeConfigInvalid, "read config file")
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigInvalid, "decode config file")
	}

	applyDefaults(&cfg)

	if err := validateAnalysis(&cfg); err != nil {
		return nil, err
	}
	if err := validateReport(&cfg); err != nil {
		return nil, err
	}
	if err := validateWatch(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Analysis.Language) == "" {
		cfg.Analysis.Language = "auto"
	}

	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{
			"node_modules", ".git", "__pycache__", "venv", ".venv",
			"dist", "build", "target", "vendor",
		}
	}
	if len(cfg.Exclude.Files) == 0 {
		cfg.Exclude.Files = []string{"*.min.js", "*_pb2.py", "*.generated.*"}
	}

	if cfg.Report.ShowAllThreshold <= 0 {
		cfg.Report.ShowAllThreshold = 50
	}
	if cfg.Report.TopLimit <= 0 {
		cfg.Report.TopLimit = 50
	}
	if cfg.Report.LayerPreview <= 0 {
		cfg.Report.LayerPreview = 6
	}
	if strings.TrimSpace(cfg.Report.Format) == "" {
		cfg.Report.Format = "markdown"
	}

	if cfg.Centrality.SampleThreshold <= 0 {
		cfg.Centrality.SampleThreshold = 120
	}

	if cfg.Watch.DebounceMs <= 0 {
		cfg.Watch.DebounceMs = 400
	}
	if cfg.Watch.MinIntervalMs <= 0 {
		cfg.Watch.MinIntervalMs = 1000
	}

	if strings.TrimSpace(cfg.Serve.Addr) == "" {
		cfg.Serve.Addr = "127.0.0.1:7788"
	}
}

func validateAnalysis(cfg *Config) error {
	lang := strings.ToLower(strings.TrimSpace(cfg.Analysis.Language))
	for _, known := range knownLanguages {
		if lang == known {
			cfg.Analysis.Language = lang
			return nil
		}
	}
	return errors.New(errors.CodeConfigInvalid,
		fmt.Sprintf("analysis.language must be one of: %s", strings.Join(knownLanguages, ", ")))
}

func validateReport(cfg *Config) error {
	format := strings.ToLower(strings.TrimSpace(cfg.Report.Format))
	for _, known := range knownFormats {
		if format == known {
			cfg.Report.Format = format
			return nil
		}
	}
	return errors.New(errors.CodeConfigInvalid,
		fmt.Sprintf("report.format must be one of: %s", strings.Join(knownFormats, ", ")))
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.DebounceMs > cfg.Watch.MinIntervalMs {
		return errors.New(errors.CodeConfigInvalid,
			"watch.debounce_ms must not exceed watch.min_interval_ms")
	}
	return nil
}

func (w Watch) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

func (w Watch) MinInterval() time.Duration {
	return time.Duration(w.MinIntervalMs) * time.Millisecond
}
