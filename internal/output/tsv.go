// # internal/output/tsv.go
package output

import (
	"fmt"
	"strings"

	"github.com/da11an/repo-query-surface/internal/insights"
)

// TSVGenerator emits a scripting-friendly dump: one typed row per file
// metric record and per resolved edge, sharing a single column set.
type TSVGenerator struct{}

func (t *TSVGenerator) Render(rep *insights.Report) (string, error) {
	var buf strings.Builder

	buf.WriteString("Type\tPath\tTarget\tFanIn\tFanOut\tBetweenness\tLayer\tLayerDrop\tScore\n")
	for _, row := range rep.KeyFiles {
		buf.WriteString(fmt.Sprintf("file\t%s\t\t%d\t%d\t%g\t%d\t\t%g\n",
			row.Path, row.FanIn, row.FanOut, row.Betweenness, row.Layer, row.Score))
	}
	for _, e := range rep.Edges {
		drop := e.SourceLayer - e.TargetLayer
		if drop < 0 {
			drop = 0
		}
		buf.WriteString(fmt.Sprintf("edge\t%s\t%s\t\t\t\t\t%d\t%d\n",
			e.Source, e.Target, drop, e.Score))
	}

	return buf.String(), nil
}
