// # internal/parser/loader.go
package parser

import (
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// LanguageSpec describes one analyzable language.
type LanguageSpec struct {
	Name       string
	Extensions []string
}

// Registry lists supported languages in a fixed order. Extensions are
// disjoint across languages; .tsx maps to the tsx grammar but stays part
// of the typescript language.
var Registry = []LanguageSpec{
	{Name: "css", Extensions: []string{".css"}},
	{Name: "go", Extensions: []string{".go"}},
	{Name: "html", Extensions: []string{".html", ".htm"}},
	{Name: "java", Extensions: []string{".java"}},
	{Name: "javascript", Extensions: []string{".js", ".jsx", ".mjs", ".cjs"}},
	{Name: "python", Extensions: []string{".py"}},
	{Name: "rust", Extensions: []string{".rs"}},
	{Name: "typescript", Extensions: []string{".ts", ".tsx"}},
}

// DetectLanguage returns the registry language owning the file's
// extension, or "" when unsupported.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	for _, spec := range Registry {
		for _, known := range spec.Extensions {
			if ext == known {
				return spec.Name
			}
		}
	}
	return ""
}

// SupportedExtensions returns every registered extension, sorted.
func SupportedExtensions() []string {
	var extensions []string
	for _, spec := range Registry {
		extensions = append(extensions, spec.Extensions...)
	}
	sort.Strings(extensions)
	return extensions
}

// GrammarLoader binds the statically linked tree-sitter grammars.
type GrammarLoader struct {
	languages map[string]*sitter.Language
}

func NewGrammarLoader() *GrammarLoader {
	return &GrammarLoader{
		languages: map[string]*sitter.Language{
			"css":        sitter.NewLanguage(tree_sitter_css.Language()),
			"go":         sitter.NewLanguage(tree_sitter_go.Language()),
			"html":       sitter.NewLanguage(tree_sitter_html.Language()),
			"java":       sitter.NewLanguage(tree_sitter_java.Language()),
			"javascript": sitter.NewLanguage(tree_sitter_javascript.Language()),
			"python":     sitter.NewLanguage(tree_sitter_python.Language()),
			"rust":       sitter.NewLanguage(tree_sitter_rust.Language()),
			"tsx":        sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
			"typescript": sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		},
	}
}

// grammarFor picks the grammar for a file. TSX files need the dedicated
// tsx grammar; everything else maps one-to-one from its language.
func (gl *GrammarLoader) grammarFor(path, language string) *sitter.Language {
	if language == "typescript" && strings.ToLower(filepath.Ext(path)) == ".tsx" {
		return gl.languages["tsx"]
	}
	return gl.languages[language]
}
