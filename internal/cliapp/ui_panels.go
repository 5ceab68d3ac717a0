package cliapp

import (
	"fmt"
	"strings"

	"github.com/da11an/repo-query-surface/internal/history"
	"github.com/da11an/repo-query-surface/internal/insights"
)

func renderHelp(m model) string {
	keys := "Keys: tab panel | / filter | l layer overlay | t trend overlay | o open source | q quit"
	if m.mode == panelCycles {
		keys = "Keys: tab panel | / filter | l layer overlay | t trend overlay | q quit"
	}
	return statusStyle.Render(keys)
}

func renderLayerOverlay(rep *insights.Report) string {
	if rep == nil || len(rep.LayerGroups) == 0 {
		return statusStyle.Render("Layer map unavailable (no internal dependencies).")
	}

	lines := []string{"Layer Map"}
	for _, group := range rep.LayerGroups {
		preview := strings.Join(group.Preview, ", ")
		if group.Overflow > 0 {
			preview += fmt.Sprintf(" (+%d more)", group.Overflow)
		}
		lines = append(lines, fmt.Sprintf("  Layer %d (%d): %s", group.Layer, group.Size, preview))
	}
	return strings.Join(lines, "\n")
}

func renderTrendOverlay(points []history.TrendPoint) string {
	if len(points) == 0 {
		return statusStyle.Render("Trend overlay unavailable (enable -history to record runs).")
	}
	last := points[len(points)-1]
	return strings.Join([]string{
		"Trend Overlay",
		fmt.Sprintf("  Runs: %d | Latest: %s", len(points), last.Timestamp.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("  Files: %d (%+d) | Edges: %d (%+d)", last.FileCount, last.DeltaFiles, last.EdgeCount, last.DeltaEdges),
		fmt.Sprintf("  Cycles: %d (%+d) | Max layer: %d (%+d)", last.CycleCount, last.DeltaCycles, last.MaxLayer, last.DeltaMaxLayer),
		fmt.Sprintf("  Mean score drift: %+0.2f (now %.2f)", last.DeltaScore, last.ScoreMean),
	}, "\n")
}
