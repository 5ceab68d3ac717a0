package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// JavaScriptExtractor handles both javascript and typescript sources;
// the import statement shape is identical across the two grammars.
type JavaScriptExtractor struct {
	Language string
}

func (e *JavaScriptExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: e.Language,
		ParsedAt: time.Now(),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"import_statement": e.extractImport,
		"export_statement": e.extractImport,
		"call_expression":  e.extractRequire,
	})
	engine.Walk(ctx, root)

	return file, nil
}

// extractImport records the source specifier of import and re-export
// statements. Export statements without a source keep walking; their
// declarations may contain require calls.
func (e *JavaScriptExtractor) extractImport(ctx *ExtractionContext, node *sitter.Node) bool {
	source := node.ChildByFieldName("source")
	if source == nil {
		return false
	}
	ctx.AddImport(Import{
		Module:   trimStringLiteral(ctx.Text(source)),
		Location: ctx.Location(node),
	})
	return true
}

// extractRequire records require("x") and dynamic import("x") calls.
func (e *JavaScriptExtractor) extractRequire(ctx *ExtractionContext, node *sitter.Node) bool {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return false
	}
	name := ctx.Text(fn)
	if name != "require" && name != "import" {
		return false
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return false
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		if child.Kind() == "string" {
			ctx.AddImport(Import{
				Module:   trimStringLiteral(ctx.Text(child)),
				Location: ctx.Location(node),
			})
			break
		}
	}
	return false
}

func trimStringLiteral(s string) string {
	return strings.Trim(s, "'\"`")
}
