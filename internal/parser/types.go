// # internal/parser/types.go
package parser

import "time"

// File is the parse result for one source file: its declared import
// references, nothing else. Rebuilt from scratch every run.
type File struct {
	Path     string
	Language string
	Imports  []Import
	ParsedAt time.Time
}

// Import is one declared import reference.
type Import struct {
	// Module is the declared target, dot-separated for dotted module
	// systems (python, java, rust) and path-style for specifier-based
	// ones (javascript, typescript, css, html, go).
	Module string
	// Items are named members of a from-style import; each is a
	// candidate submodule of Module during resolution.
	Items []string
	// Level is the relative-import level: 0 for absolute references,
	// 1 for the current package, each additional step one package up.
	Level int
	// Wildcard marks star imports; the target still registers, members do not.
	Wildcard bool
	Location Location
}

// IsRelative reports whether the reference is package-relative.
func (i Import) IsRelative() bool {
	return i.Level > 0
}

type Location struct {
	File   string
	Line   int
	Column int
}
