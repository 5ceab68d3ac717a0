package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type JavaExtractor struct{}

func (e *JavaExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "java",
		ParsedAt: time.Now(),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"import_declaration": e.extractImport,
	})
	engine.Walk(ctx, root)

	return file, nil
}

func (e *JavaExtractor) extractImport(ctx *ExtractionContext, node *sitter.Node) bool {
	var module string
	wildcard := false
	static := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "scoped_identifier", "identifier":
			module = ctx.Text(child)
		case "asterisk":
			wildcard = true
		case "static":
			static = true
		}
	}
	if module == "" {
		return true
	}

	var items []string
	if static && !wildcard {
		// import static com.example.Util.helper refers to a member of
		// Util; split it off so the type itself stays resolvable.
		if idx := strings.LastIndex(module, "."); idx > 0 {
			items = []string{module[idx+1:]}
			module = module[:idx]
		}
	}

	ctx.AddImport(Import{
		Module:   module,
		Items:    items,
		Wildcard: wildcard,
		Location: ctx.Location(node),
	})
	return true
}
