// # internal/parser/parser.go
package parser

import (
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/da11an/repo-query-surface/internal/errors"
	"github.com/da11an/repo-query-surface/internal/observability"
)

// Extractor collects import references from a parsed syntax tree.
type Extractor interface {
	Extract(root *sitter.Node, source []byte, filePath string) (*File, error)
}

type Parser struct {
	loader     *GrammarLoader
	extractors map[string]Extractor
}

func NewParser() *Parser {
	p := &Parser{
		loader:     NewGrammarLoader(),
		extractors: make(map[string]Extractor),
	}
	p.RegisterExtractor("python", &PythonExtractor{})
	p.RegisterExtractor("javascript", &JavaScriptExtractor{Language: "javascript"})
	p.RegisterExtractor("typescript", &JavaScriptExtractor{Language: "typescript"})
	p.RegisterExtractor("go", &GoExtractor{})
	p.RegisterExtractor("java", &JavaExtractor{})
	p.RegisterExtractor("rust", &RustExtractor{})
	p.RegisterExtractor("css", &CSSExtractor{})
	p.RegisterExtractor("html", &HTMLExtractor{})
	return p
}

func (p *Parser) RegisterExtractor(lang string, e Extractor) {
	p.extractors[lang] = e
}

// ParseFile parses content and extracts its import references. Syntax
// errors surface as PARSE_FAILED so the caller can skip the file; they
// never abort a run.
func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	language := DetectLanguage(path)
	if language == "" {
		return nil, errors.AddContext(
			errors.New(errors.CodeParseFailed, "unsupported language"), errors.CtxPath, path)
	}

	grammar := p.loader.grammarFor(path, language)
	if grammar == nil {
		return nil, errors.AddContext(
			errors.New(errors.CodeParseFailed, "grammar not loaded"), errors.CtxLanguage, language)
	}

	start := time.Now()

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		observability.ParseFailures.WithLabelValues(language).Inc()
		return nil, errors.AddContext(
			errors.New(errors.CodeParseFailed, "parse produced no tree"), errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		observability.ParseFailures.WithLabelValues(language).Inc()
		return nil, errors.AddContext(
			errors.New(errors.CodeParseFailed, "syntax error"), errors.CtxPath, path)
	}

	extractor := p.extractors[language]
	if extractor == nil {
		return nil, errors.AddContext(
			errors.New(errors.CodeParseFailed, "no extractor registered"), errors.CtxLanguage, language)
	}

	file, err := extractor.Extract(root, content, path)
	if err != nil {
		observability.ParseFailures.WithLabelValues(language).Inc()
		return nil, err
	}

	observability.ParseDuration.WithLabelValues(language).Observe(time.Since(start).Seconds())
	observability.FilesParsed.WithLabelValues(language).Inc()
	return file, nil
}
