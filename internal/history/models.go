package history

import (
	"time"

	"github.com/da11an/repo-query-surface/internal/insights"
)

const SchemaVersion = 1

// Run is one persisted analysis summary. Only scalar metrics are
// stored; graph structure never is.
type Run struct {
	RunID          string    `json:"run_id"`
	Timestamp      time.Time `json:"timestamp"`
	Language       string    `json:"language"`
	FileCount      int       `json:"file_count"`
	EdgeCount      int       `json:"edge_count"`
	ComponentCount int       `json:"component_count"`
	CycleCount     int       `json:"cycle_count"`
	MaxLayer       int       `json:"max_layer"`
	ScoreMean      float64   `json:"score_mean"`
	ScoreMax       float64   `json:"score_max"`
}

// FromReport flattens a report into its persistable run summary.
func FromReport(rep *insights.Report) Run {
	return Run{
		RunID:          rep.RunID,
		Timestamp:      rep.GeneratedAt,
		Language:       rep.Language,
		FileCount:      rep.FileCount,
		EdgeCount:      rep.EdgeCount,
		ComponentCount: rep.ComponentCount,
		CycleCount:     rep.CycleCount,
		MaxLayer:       rep.MaxLayer,
		ScoreMean:      rep.ScoreMean,
		ScoreMax:       rep.ScoreMax,
	}
}

// TrendPoint is a run plus the change since the previous one.
type TrendPoint struct {
	Run
	DeltaFiles    int     `json:"delta_files"`
	DeltaEdges    int     `json:"delta_edges"`
	DeltaCycles   int     `json:"delta_cycles"`
	DeltaMaxLayer int     `json:"delta_max_layer"`
	DeltaScore    float64 `json:"delta_score_mean"`
}

// Deltas folds runs in ascending time order into trend points. The
// first point carries zero deltas.
func Deltas(runs []Run) []TrendPoint {
	points := make([]TrendPoint, 0, len(runs))
	for i, run := range runs {
		p := TrendPoint{Run: run}
		if i > 0 {
			prev := runs[i-1]
			p.DeltaFiles = run.FileCount - prev.FileCount
			p.DeltaEdges = run.EdgeCount - prev.EdgeCount
			p.DeltaCycles = run.CycleCount - prev.CycleCount
			p.DeltaMaxLayer = run.MaxLayer - prev.MaxLayer
			p.DeltaScore = run.ScoreMean - prev.ScoreMean
		}
		points = append(points, p)
	}
	return points
}
