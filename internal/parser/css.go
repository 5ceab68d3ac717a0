package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type CSSExtractor struct{}

func (e *CSSExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "css",
		ParsedAt: time.Now(),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"import_statement": e.extractImport,
	})
	engine.Walk(ctx, root)

	return file, nil
}

// extractImport handles @import "x.css" and @import url(x.css).
func (e *CSSExtractor) extractImport(ctx *ExtractionContext, node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string_value":
			e.addTarget(ctx, node, ctx.Text(child))
			return true
		case "call_expression":
			if target := e.urlArgument(ctx, child); target != "" {
				e.addTarget(ctx, node, target)
			}
			return true
		}
	}
	return true
}

func (e *CSSExtractor) urlArgument(ctx *ExtractionContext, call *sitter.Node) string {
	for i := uint(0); i < call.ChildCount(); i++ {
		if call.Child(i).Kind() != "arguments" {
			continue
		}
		args := call.Child(i)
		for j := uint(0); j < args.ChildCount(); j++ {
			child := args.Child(j)
			switch child.Kind() {
			case "string_value", "plain_value":
				return ctx.Text(child)
			}
		}
	}
	return ""
}

func (e *CSSExtractor) addTarget(ctx *ExtractionContext, node *sitter.Node, raw string) {
	target := strings.Trim(strings.TrimSpace(raw), "'\"")
	if target == "" {
		return
	}
	ctx.AddImport(Import{
		Module:   target,
		Location: ctx.Location(node),
	})
}
