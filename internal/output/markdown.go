package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/da11an/repo-query-surface/internal/insights"
)

// MarkdownGenerator renders the default human-facing report.
type MarkdownGenerator struct{}

func (m *MarkdownGenerator) Render(rep *insights.Report) (string, error) {
	var b strings.Builder

	b.WriteString("## Dependency Map\n")
	b.WriteString("> File-to-file import topology: module popularity, key files, layer map, key links.\n\n")

	m.writeSummary(&b, rep)

	if rep.NoFiles {
		b.WriteString("*(no parseable files found)*\n")
		return b.String(), nil
	}

	m.writePopularity(&b, rep)

	if rep.NoInternalEdges {
		b.WriteString("*(no internal dependencies found)*\n")
		return b.String(), nil
	}

	m.writeKeyFiles(&b, rep)
	m.writeLayerMap(&b, rep)
	m.writeCycles(&b, rep)
	m.writeKeyLinks(&b, rep)

	if rep.Sampled {
		fmt.Fprintf(&b, "*Betweenness approximated from %d evenly spaced sources; scores scaled to the full graph.*\n", rep.SampleSize)
	}
	return b.String(), nil
}

func (m *MarkdownGenerator) writeSummary(b *strings.Builder, rep *insights.Report) {
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(b, "| Language | %s |\n", rep.Language)
	fmt.Fprintf(b, "| Generated | %s |\n", rep.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(b, "| Files analyzed | %d |\n", rep.FileCount)
	if rep.SkippedCount > 0 {
		fmt.Fprintf(b, "| Files skipped | %d |\n", rep.SkippedCount)
	}
	fmt.Fprintf(b, "| Modules referenced | %d |\n", rep.ModuleCount)
	fmt.Fprintf(b, "| Internal edges | %d |\n", rep.EdgeCount)
	fmt.Fprintf(b, "| Cycles | %d |\n", rep.CycleCount)
	fmt.Fprintf(b, "| Max layer | %d |\n\n", rep.MaxLayer)
}

func (m *MarkdownGenerator) writePopularity(b *strings.Builder, rep *insights.Report) {
	b.WriteString("### Module Popularity\n")
	b.WriteString("> Raw import counts, external targets included.\n\n")
	if len(rep.ModulePopularity) == 0 {
		b.WriteString("*(no imports found)*\n\n")
		return
	}
	b.WriteString("| Module | Imports | Importers |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, row := range rep.ModulePopularity {
		fmt.Fprintf(b, "| `%s` | %d | %d |\n", row.Module, row.Count, row.Importers)
	}
	b.WriteString("\n")
}

func (m *MarkdownGenerator) writeKeyFiles(b *strings.Builder, rep *insights.Report) {
	b.WriteString("### Key Files\n")
	b.WriteString("> Ranked by fan-in + fan-out + betweenness; high scores sit on many import paths.\n\n")
	b.WriteString("| # | File | Fan-in | Fan-out | Betweenness | Layer | Score |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for i, row := range rep.KeyFiles {
		fmt.Fprintf(b, "| %d | `%s` | %d | %d | %.2f | %d | %.2f |\n",
			i+1, row.Path, row.FanIn, row.FanOut, row.Betweenness, row.Layer, row.Score)
	}
	fmt.Fprintf(b, "\nShowing %d of %d files.\n\n", len(rep.KeyFiles), rep.FileCount)
}

func (m *MarkdownGenerator) writeLayerMap(b *strings.Builder, rep *insights.Report) {
	b.WriteString("### Layer Map\n")
	b.WriteString("> Layer 0 imports nothing internal; higher layers orchestrate the ones below.\n\n")
	for _, group := range rep.LayerGroups {
		names := make([]string, 0, len(group.Preview))
		for _, p := range group.Preview {
			names = append(names, "`"+p+"`")
		}
		label := "files"
		if group.Size == 1 {
			label = "file"
		}
		fmt.Fprintf(b, "- **Layer %d** (%d %s): %s", group.Layer, group.Size, label, strings.Join(names, ", "))
		if group.Overflow > 0 {
			fmt.Fprintf(b, " (+%d more)", group.Overflow)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *MarkdownGenerator) writeCycles(b *strings.Builder, rep *insights.Report) {
	b.WriteString("### Cycles\n")
	if len(rep.Cycles) == 0 {
		b.WriteString("No circular imports detected.\n\n")
		return
	}
	for _, cycle := range rep.Cycles {
		fmt.Fprintf(b, "- `%s` (%d files)\n", strings.Join(cycle, " -> "), len(cycle))
	}
	b.WriteString("\n")
}

func (m *MarkdownGenerator) writeKeyLinks(b *strings.Builder, rep *insights.Report) {
	b.WriteString("### Key Links\n")
	b.WriteString("> Edges from orchestrators into the foundation score highest.\n\n")
	b.WriteString("| # | From | To | Layer drop | Score |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for i, row := range rep.KeyLinks {
		fmt.Fprintf(b, "| %d | `%s` | `%s` | %d | %d |\n",
			i+1, row.Source, row.Target, row.LayerDrop, row.Score)
	}
	fmt.Fprintf(b, "\nShowing %d of %d edges.\n\n", len(rep.KeyLinks), rep.EdgeCount)
}
