package output

import (
	"fmt"

	"github.com/da11an/repo-query-surface/internal/errors"
	"github.com/da11an/repo-query-surface/internal/insights"
)

// Renderer turns one analysis report into text. Renderers consume the
// ordered report records as-is; all ranking and truncation already
// happened upstream.
type Renderer interface {
	Render(rep *insights.Report) (string, error)
}

// For returns the renderer registered for a format name.
func For(format string) (Renderer, error) {
	switch format {
	case "markdown", "":
		return &MarkdownGenerator{}, nil
	case "tsv":
		return &TSVGenerator{}, nil
	case "dot":
		return &DOTGenerator{}, nil
	case "mermaid":
		return &MermaidGenerator{}, nil
	case "json":
		return &JSONGenerator{}, nil
	}
	return nil, errors.New(errors.CodeConfigInvalid, fmt.Sprintf("unknown output format %q", format))
}
