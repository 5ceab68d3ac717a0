package insights

import "time"

// Report is the structured output of one analysis run. Renderers own
// all text formatting; everything here is plain ordered data.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Root        string    `json:"root"`
	Language    string    `json:"language"`
	Roots       []string  `json:"roots,omitempty"`
	DurationMs  int64     `json:"duration_ms"`

	FileCount      int `json:"file_count"`
	SkippedCount   int `json:"skipped_count"`
	ModuleCount    int `json:"module_count"`
	EdgeCount      int `json:"edge_count"`
	ComponentCount int `json:"component_count"`
	CycleCount     int `json:"cycle_count"`
	MaxLayer       int `json:"max_layer"`

	ScoreMean float64 `json:"score_mean"`
	ScoreMax  float64 `json:"score_max"`

	// Sampled marks approximate betweenness scores; reports built from
	// sampled output must disclose the sample size.
	Sampled    bool `json:"sampled"`
	SampleSize int  `json:"sample_size"`

	NoFiles         bool `json:"no_files"`
	NoInternalEdges bool `json:"no_internal_edges"`

	ModulePopularity []ModuleRow  `json:"module_popularity,omitempty"`
	KeyFiles         []FileRow    `json:"key_files,omitempty"`
	LayerGroups      []LayerGroup `json:"layer_groups,omitempty"`
	KeyLinks         []LinkRow    `json:"key_links,omitempty"`
	Cycles           [][]string   `json:"cycles,omitempty"`
	Edges            []EdgeRow    `json:"edges,omitempty"`
}

// ModuleRow counts raw references to one module name, internal or not.
type ModuleRow struct {
	Module    string `json:"module"`
	Count     int    `json:"count"`
	Importers int    `json:"importers"`
}

// FileRow ranks one file by composite importance.
type FileRow struct {
	Path        string  `json:"path"`
	FanIn       int     `json:"fan_in"`
	FanOut      int     `json:"fan_out"`
	Betweenness float64 `json:"betweenness"`
	Layer       int     `json:"layer"`
	Score       float64 `json:"score"`
}

// LayerGroup previews the files living on one condensation layer.
type LayerGroup struct {
	Layer    int      `json:"layer"`
	Size     int      `json:"size"`
	Preview  []string `json:"preview"`
	Overflow int      `json:"overflow"`
}

// LinkRow ranks one dependency edge by composite importance.
type LinkRow struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	LayerDrop int    `json:"layer_drop"`
	Score     int    `json:"score"`
}

// EdgeRow is one resolved file-to-file edge with its layer endpoints,
// the raw material for diagram and dump renderers.
type EdgeRow struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	SourceLayer int    `json:"source_layer"`
	TargetLayer int    `json:"target_layer"`
	Score       int    `json:"score"`
	InCycle     bool   `json:"in_cycle"`
}
