// # internal/output/dot.go
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/da11an/repo-query-surface/internal/insights"
)

// DOTGenerator renders a Graphviz digraph of the resolved edges with
// cycle members highlighted and files ranked by layer.
type DOTGenerator struct{}

func (d *DOTGenerator) Render(rep *insights.Report) (string, error) {
	var buf strings.Builder

	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.5;\n")
	buf.WriteString("  splines=polyline;\n")
	buf.WriteString("  overlap=false;\n\n")

	cycleMembers := make(map[string]bool)
	for _, cycle := range rep.Cycles {
		for _, f := range cycle {
			cycleMembers[f] = true
		}
	}

	layerOf := make(map[string]int)
	for _, e := range rep.Edges {
		layerOf[e.Source] = e.SourceLayer
		layerOf[e.Target] = e.TargetLayer
	}
	files := make([]string, 0, len(layerOf))
	for f := range layerOf {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, f := range files {
		label := fmt.Sprintf("%s\\n(layer %d)", f, layerOf[f])
		if cycleMembers[f] {
			buf.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\", fillcolor=\"mistyrose\", color=\"red\", style=\"rounded,filled\", penwidth=2.0];\n", f, label))
		} else {
			buf.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\", color=\"darkslategrey\"];\n", f, label))
		}
	}
	buf.WriteString("\n")

	// Same-rank groups keep each layer on one row.
	byLayer := make(map[int][]string)
	for _, f := range files {
		byLayer[layerOf[f]] = append(byLayer[layerOf[f]], f)
	}
	layers := make([]int, 0, len(byLayer))
	for l := range byLayer {
		layers = append(layers, l)
	}
	sort.Ints(layers)
	for _, l := range layers {
		buf.WriteString("  { rank=same;")
		for _, f := range byLayer[l] {
			buf.WriteString(fmt.Sprintf(" \"%s\";", f))
		}
		buf.WriteString(" }\n")
	}
	buf.WriteString("\n")

	for _, e := range rep.Edges {
		if e.InCycle {
			buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"red\", penwidth=3.0, label=\"CYCLE\"];\n", e.Source, e.Target))
		} else {
			buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"forestgreen\", penwidth=1.5];\n", e.Source, e.Target))
		}
	}

	buf.WriteString("\n  subgraph cluster_legend {\n")
	buf.WriteString("    label=\"Legend\";\n")
	buf.WriteString("    style=dashed;\n")
	buf.WriteString("    legend_file [label=\"File\", color=\"darkslategrey\"];\n")
	buf.WriteString("    legend_cycle [label=\"Cycle Member\", fillcolor=\"mistyrose\", color=\"red\", style=\"rounded,filled\"];\n")
	buf.WriteString("  }\n")

	buf.WriteString("}\n")

	return buf.String(), nil
}
