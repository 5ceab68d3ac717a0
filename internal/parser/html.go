package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type HTMLExtractor struct{}

func (e *HTMLExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "html",
		ParsedAt: time.Now(),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"attribute": e.extractAttribute,
	})
	engine.Walk(ctx, root)

	return file, nil
}

// extractAttribute picks up script src and link href references.
func (e *HTMLExtractor) extractAttribute(ctx *ExtractionContext, node *sitter.Node) bool {
	var name string
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child.Kind() == "attribute_name" {
			name = strings.ToLower(ctx.Text(child))
			break
		}
	}
	if name != "src" && name != "href" {
		return true
	}
	if !e.referenceTag(ctx, node.Parent()) {
		return true
	}

	target := strings.Trim(e.attributeValue(ctx, node), "'\"")
	if target == "" {
		return true
	}
	ctx.AddImport(Import{
		Module:   target,
		Location: ctx.Location(node),
	})
	return true
}

func (e *HTMLExtractor) referenceTag(ctx *ExtractionContext, tag *sitter.Node) bool {
	if tag == nil {
		return false
	}
	switch tag.Kind() {
	case "start_tag", "self_closing_tag":
	default:
		return false
	}
	for i := uint(0); i < tag.ChildCount(); i++ {
		if child := tag.Child(i); child.Kind() == "tag_name" {
			switch strings.ToLower(ctx.Text(child)) {
			case "script", "link":
				return true
			}
			return false
		}
	}
	return false
}

func (e *HTMLExtractor) attributeValue(ctx *ExtractionContext, node *sitter.Node) string {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "quoted_attribute_value":
			for j := uint(0); j < child.ChildCount(); j++ {
				if inner := child.Child(j); inner.Kind() == "attribute_value" {
					return ctx.Text(inner)
				}
			}
			return strings.Trim(ctx.Text(child), "'\"")
		case "attribute_value":
			return ctx.Text(child)
		}
	}
	return ""
}
