package output

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/da11an/repo-query-surface/internal/insights"
)

// MermaidGenerator renders the top-scoring links as a flowchart small
// enough to embed in documentation.
type MermaidGenerator struct{}

func (m *MermaidGenerator) Render(rep *insights.Report) (string, error) {
	var b strings.Builder
	b.WriteString("graph TD\n")

	cycleMembers := make(map[string]bool)
	for _, cycle := range rep.Cycles {
		for _, f := range cycle {
			cycleMembers[f] = true
		}
	}

	nameSet := make(map[string]bool)
	for _, link := range rep.KeyLinks {
		nameSet[link.Source] = true
		nameSet[link.Target] = true
	}
	names := make([]string, 0, len(nameSet))
	for n := range nameSet {
		names = append(names, n)
	}
	sort.Strings(names)
	ids := makeMermaidIDs(names)

	for _, n := range names {
		fmt.Fprintf(&b, "  %s[\"%s\"]\n", ids[n], escapeMermaidLabel(n))
	}
	for _, link := range rep.KeyLinks {
		fmt.Fprintf(&b, "  %s --> %s\n", ids[link.Source], ids[link.Target])
	}

	var cycles []string
	for _, n := range names {
		if cycleMembers[n] {
			cycles = append(cycles, ids[n])
		}
	}
	if len(cycles) > 0 {
		b.WriteString("  classDef cycle fill:#f8d7da,stroke:#c00,stroke-width:2px;\n")
		fmt.Fprintf(&b, "  class %s cycle;\n", strings.Join(cycles, ","))
	}

	return b.String(), nil
}

func sanitizeMermaidID(name string) string {
	if name == "" {
		return "n"
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := b.String()
	if unicode.IsDigit(rune(out[0])) {
		return "n_" + out
	}
	return out
}

func makeMermaidIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	used := make(map[string]int, len(names))
	for _, name := range names {
		base := sanitizeMermaidID(name)
		idx := used[base]
		used[base] = idx + 1
		if idx == 0 {
			ids[name] = base
			continue
		}
		ids[name] = fmt.Sprintf("%s_%d", base, idx+1)
	}
	return ids
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
