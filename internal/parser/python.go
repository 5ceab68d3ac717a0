// # internal/parser/python.go
package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "python",
		ParsedAt: time.Now(),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"import_statement":      e.extractImport,
		"import_from_statement": e.extractFromImport,
	})
	engine.Walk(ctx, root)

	return file, nil
}

func (e *PythonExtractor) extractImport(ctx *ExtractionContext, node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "dotted_name", "identifier":
			ctx.AddImport(Import{
				Module:   ctx.Text(child),
				Location: ctx.Location(child),
			})
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				ctx.AddImport(Import{
					Module:   ctx.Text(name),
					Location: ctx.Location(child),
				})
			}
		}
	}
	return true
}

func (e *PythonExtractor) extractFromImport(ctx *ExtractionContext, node *sitter.Node) bool {
	var module string
	var items []string
	level := 0
	wildcard := false
	afterImportKeyword := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "relative_import":
			// Text is the leading dots plus an optional module, e.g. "..util".
			relText := ctx.Text(child)
			level = len(relText) - len(strings.TrimLeft(relText, "."))
			module = relText[level:]
		case "dotted_name", "identifier":
			if afterImportKeyword {
				items = append(items, ctx.Text(child))
			} else {
				module = ctx.Text(child)
			}
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				items = append(items, ctx.Text(name))
			}
		case "import_list":
			e.collectItems(ctx, child, &items)
		case "wildcard_import":
			wildcard = true
		case "import":
			afterImportKeyword = true
		}
	}

	ctx.AddImport(Import{
		Module:   module,
		Items:    items,
		Level:    level,
		Wildcard: wildcard,
		Location: ctx.Location(node),
	})
	return true
}

func (e *PythonExtractor) collectItems(ctx *ExtractionContext, node *sitter.Node, items *[]string) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "dotted_name", "identifier":
			*items = append(*items, ctx.Text(child))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				*items = append(*items, ctx.Text(name))
			}
		}
	}
}
