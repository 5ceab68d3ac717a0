// # internal/resolver/go_resolver.go
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/da11an/repo-query-surface/internal/parser"
)

// resolveGoImport matches import paths against the repo module path. A
// matched package directory binds every non-test file in it; anything
// outside the module path is stdlib or third-party, so external.
func (r *Resolver) resolveGoImport(ref parser.Import) Resolution {
	if r.goModule == "" {
		return Resolution{}
	}
	var dir string
	switch {
	case ref.Module == r.goModule:
		dir = ""
	case strings.HasPrefix(ref.Module, r.goModule+"/"):
		dir = strings.TrimPrefix(ref.Module, r.goModule+"/")
	default:
		return Resolution{}
	}

	var targets []string
	for _, f := range r.packages[dir] {
		if strings.HasSuffix(f, "_test.go") {
			continue
		}
		targets = append(targets, f)
	}
	if len(targets) == 0 {
		return Resolution{}
	}
	return Resolution{Internal: true, Targets: targets}
}

// GoModulePath reads the module path from go.mod under root, or ""
// when there is none.
func GoModulePath(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "module" {
			return strings.Trim(fields[1], `"`)
		}
	}
	return ""
}
