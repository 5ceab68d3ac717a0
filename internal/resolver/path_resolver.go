// # internal/resolver/path_resolver.go
package resolver

import (
	"path"
	"strings"

	"github.com/da11an/repo-query-surface/internal/parser"
)

// resolvePath handles specifier-style references (javascript family,
// css, html). Relative specifiers resolve against the importing file's
// directory, leading-slash specifiers against the repo root. Bare
// specifiers are package imports and stay external unless the profile
// treats them as relative (css/html url conventions).
func (r *Resolver) resolvePath(ref parser.Import, fromFile string) Resolution {
	spec := ref.Module
	if i := strings.IndexAny(spec, "?#"); i >= 0 {
		spec = spec[:i]
	}
	if spec == "" || isExternalSpecifier(spec) {
		return Resolution{}
	}

	var base string
	switch {
	case spec == "." || spec == ".." || strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../"):
		base = path.Join(parentDir(fromFile), spec)
	case strings.HasPrefix(spec, "/"):
		base = strings.TrimPrefix(path.Clean(spec), "/")
	case r.profile.BareRelative:
		base = path.Join(parentDir(fromFile), spec)
	default:
		return Resolution{}
	}
	if base == "" || base == "." || base == ".." || strings.HasPrefix(base, "../") {
		return Resolution{}
	}
	return r.lookupSpecifier(base)
}

func (r *Resolver) lookupSpecifier(base string) Resolution {
	if r.files[base] {
		return Resolution{Internal: true, Targets: []string{base}}
	}

	// TypeScript sources emit .js specifiers under nodenext resolution;
	// retry the bare stem so ./mod.js can bind mod.ts.
	stem := base
	if r.profile.Name == "typescript" {
		switch path.Ext(base) {
		case ".js", ".jsx", ".mjs", ".cjs":
			stem = strings.TrimSuffix(base, path.Ext(base))
		}
	}
	for _, suffix := range r.profile.Suffixes {
		if candidate := stem + suffix; r.files[candidate] {
			return Resolution{Internal: true, Targets: []string{candidate}}
		}
	}
	for _, index := range r.profile.IndexNames {
		if candidate := base + "/" + index; r.files[candidate] {
			return Resolution{Internal: true, Targets: []string{candidate}}
		}
	}
	return Resolution{}
}

func isExternalSpecifier(spec string) bool {
	if strings.HasPrefix(spec, "//") {
		return true
	}
	if i := strings.Index(spec, ":"); i >= 0 && !strings.ContainsAny(spec[:i], "/.") {
		// scheme prefix: http:, https:, data:, mailto:
		return true
	}
	return false
}
