package config

import (
	"log/slog"
	"os"
	"strconv"
)

// ApplyEnvOverrides applies RQS_* environment overrides to the numeric
// report and centrality knobs. Non-numeric values are ignored with a
// warning so a bad override degrades to the configured default instead
// of failing the run.
func ApplyEnvOverrides(cfg *Config) {
	setEnvInt(&cfg.Report.ShowAllThreshold, "RQS_SHOW_ALL")
	setEnvInt(&cfg.Report.TopLimit, "RQS_TOP_LIMIT")
	setEnvInt(&cfg.Report.LayerPreview, "RQS_LAYER_PREVIEW")
	setEnvInt(&cfg.Centrality.SampleThreshold, "RQS_SAMPLE_THRESHOLD")
}

func setEnvInt(target *int, key string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		slog.Warn("ignoring non-numeric env override", "key", key, "value", val)
		return
	}
	*target = parsed
}
