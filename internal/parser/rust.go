package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type RustExtractor struct{}

func (e *RustExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "rust",
		ParsedAt: time.Now(),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"use_declaration": e.extractUse,
		"mod_item":        e.extractMod,
	})
	engine.Walk(ctx, root)

	return file, nil
}

// extractMod records declaration-form modules (mod foo;), which bind a
// sibling file. Inline modules with a body declare nothing external.
func (e *RustExtractor) extractMod(ctx *ExtractionContext, node *sitter.Node) bool {
	if node.ChildByFieldName("body") != nil {
		return false
	}
	if name := node.ChildByFieldName("name"); name != nil {
		ctx.AddImport(Import{
			Module:   ctx.Text(name),
			Level:    1,
			Location: ctx.Location(node),
		})
	}
	return true
}

func (e *RustExtractor) extractUse(ctx *ExtractionContext, node *sitter.Node) bool {
	if arg := node.ChildByFieldName("argument"); arg != nil {
		e.addUseTarget(ctx, arg, "")
	}
	return true
}

// addUseTarget flattens a use tree into one reference per leaf, so
// use crate::a::{b, c} yields a.b and a.c.
func (e *RustExtractor) addUseTarget(ctx *ExtractionContext, node *sitter.Node, prefix string) {
	switch node.Kind() {
	case "identifier", "scoped_identifier", "crate", "self", "super":
		e.emitUse(ctx, node, joinRustPath(prefix, ctx.Text(node)), false)
	case "use_as_clause":
		if path := node.ChildByFieldName("path"); path != nil {
			e.emitUse(ctx, node, joinRustPath(prefix, ctx.Text(path)), false)
		}
	case "use_wildcard":
		text := strings.TrimSuffix(ctx.Text(node), "*")
		text = strings.TrimSuffix(text, "::")
		e.emitUse(ctx, node, joinRustPath(prefix, text), true)
	case "scoped_use_list":
		base := prefix
		if path := node.ChildByFieldName("path"); path != nil {
			base = joinRustPath(prefix, ctx.Text(path))
		}
		if list := node.ChildByFieldName("list"); list != nil {
			e.addUseTarget(ctx, list, base)
		}
	case "use_list":
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			switch child.Kind() {
			case "{", "}", ",":
			default:
				e.addUseTarget(ctx, child, prefix)
			}
		}
	}
}

func (e *RustExtractor) emitUse(ctx *ExtractionContext, node *sitter.Node, fullPath string, wildcard bool) {
	module, level := normalizeRustPath(fullPath)
	if module == "" && level == 0 {
		return
	}
	// The last path segment is often an item inside the parent module
	// rather than a module of its own, so split it off as a member and
	// let resolution try both forms. Wildcard targets are whole modules.
	var items []string
	if !wildcard {
		if idx := strings.LastIndex(module, "."); idx > 0 {
			items = []string{module[idx+1:]}
			module = module[:idx]
		}
	}
	ctx.AddImport(Import{
		Module:   module,
		Items:    items,
		Level:    level,
		Wildcard: wildcard,
		Location: ctx.Location(node),
	})
}

func joinRustPath(prefix, s string) string {
	s = strings.TrimSpace(s)
	if prefix == "" {
		return s
	}
	if s == "" {
		return prefix
	}
	return prefix + "::" + s
}

// normalizeRustPath converts a :: path to the dotted form and maps
// crate/self/super prefixes onto relative levels: self is the current
// package (level 1), each super climbs one more, crate is absolute.
func normalizeRustPath(path string) (string, int) {
	segments := strings.Split(path, "::")
	level := 0
	i := 0

prefix:
	for i < len(segments) {
		switch segments[i] {
		case "crate":
			i++
			break prefix
		case "self":
			if level == 0 {
				level = 1
			}
			i++
			break prefix
		case "super":
			if level == 0 {
				level = 1
			}
			level++
			i++
		default:
			break prefix
		}
	}

	var kept []string
	for _, seg := range segments[i:] {
		if seg == "" || seg == "self" {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, "."), level
}
