// # internal/parser/golang.go
package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type GoExtractor struct{}

func (e *GoExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "go",
		ParsedAt: time.Now(),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"import_declaration": e.extractImports,
	})
	engine.Walk(ctx, root)

	return file, nil
}

func (e *GoExtractor) extractImports(ctx *ExtractionContext, node *sitter.Node) bool {
	e.walkImports(ctx, node)
	return true
}

// walkImports handles both single imports and grouped import blocks by
// descending until it finds import_spec nodes.
func (e *GoExtractor) walkImports(ctx *ExtractionContext, node *sitter.Node) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		if child.Kind() != "import_spec" {
			e.walkImports(ctx, child)
			continue
		}

		for j := uint(0); j < child.ChildCount(); j++ {
			spec := child.Child(j)
			kind := spec.Kind()
			if kind == "interpreted_string_literal" || kind == "raw_string_literal" {
				path := strings.Trim(ctx.Text(spec), "\"`")
				if path == "" {
					continue
				}
				ctx.AddImport(Import{
					Module:   path,
					Location: ctx.Location(child),
				})
			}
		}
	}
}
