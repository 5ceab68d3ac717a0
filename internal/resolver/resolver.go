// # internal/resolver/resolver.go
package resolver

import (
	"path"
	"sort"
	"strings"

	"github.com/da11an/repo-query-surface/internal/parser"
)

// Resolution is the outcome of resolving one import reference.
// Internal with no targets marks a namespace package: the reference
// binds inside the repo but there is no single file to draw an edge to.
type Resolution struct {
	Internal bool
	Targets  []string
}

// Resolver maps import references onto the tracked file set. Resolve is
// a pure function of (reference, importing file, ordered roots, tracked
// set); nothing here touches the filesystem.
type Resolver struct {
	profile  *Profile
	files    map[string]bool
	packages map[string][]string // dir -> analyzed files directly inside
	dirs     map[string]bool     // dirs with analyzed files anywhere below
	roots    []string
	goModule string
}

// New builds a resolver over repo-relative, slash-separated file paths.
// extraRoots come from configuration; goModule is the module path from
// go.mod and only matters for the go profile.
func New(profile *Profile, files []string, extraRoots []string, goModule string) *Resolver {
	r := &Resolver{
		profile:  profile,
		files:    make(map[string]bool, len(files)),
		packages: make(map[string][]string),
		dirs:     make(map[string]bool),
		goModule: goModule,
	}
	for _, f := range files {
		if r.files[f] {
			continue
		}
		r.files[f] = true
		dir := parentDir(f)
		r.packages[dir] = append(r.packages[dir], f)
		for d := dir; d != ""; d = parentDir(d) {
			r.dirs[d] = true
		}
	}
	for _, members := range r.packages {
		sort.Strings(members)
	}
	r.roots = detectRoots(r.dirs, profile, extraRoots)
	return r
}

// Roots returns the ordered source roots the resolver evaluates.
func (r *Resolver) Roots() []string {
	return r.roots
}

// detectRoots fixes the root precedence: the empty root first, then
// every top-level directory holding analyzed files in lexicographic
// order, then profile and configured extras that exist in the tree.
func detectRoots(dirs map[string]bool, profile *Profile, extra []string) []string {
	roots := []string{""}
	var top []string
	for d := range dirs {
		if !strings.Contains(d, "/") {
			top = append(top, d)
		}
	}
	sort.Strings(top)
	roots = append(roots, top...)

	seen := make(map[string]bool, len(roots))
	for _, root := range roots {
		seen[root] = true
	}
	for _, set := range [][]string{profile.ExtraRoots, extra} {
		for _, root := range set {
			root = strings.Trim(path.Clean("/"+root), "/")
			if root == "" || seen[root] || !dirs[root] {
				continue
			}
			seen[root] = true
			roots = append(roots, root)
		}
	}
	return roots
}

// Resolve maps one reference from the importing file to its internal
// targets. No match means the reference is external, never an error.
func (r *Resolver) Resolve(ref parser.Import, fromFile string) Resolution {
	if r.profile.PathStyle {
		return r.resolvePath(ref, fromFile)
	}
	if r.profile.Name == "go" {
		return r.resolveGoImport(ref)
	}
	if ref.IsRelative() {
		return r.resolveRelative(ref, fromFile)
	}
	return r.resolveDotted(ref)
}

// resolveDotted handles absolute dotted references. Each imported
// member is tried as a submodule of the target before falling back to
// the target itself, so "from pkg import sub" binds pkg/sub when sub is
// a module and pkg otherwise.
func (r *Resolver) resolveDotted(ref parser.Import) Resolution {
	if ref.Module == "" {
		return Resolution{}
	}
	if len(ref.Items) == 0 {
		return r.lookupDotted(ref.Module)
	}
	merged := Resolution{}
	for _, item := range ref.Items {
		res := r.lookupDotted(ref.Module + "." + item)
		if !res.Internal {
			res = r.lookupDotted(ref.Module)
		}
		merged = mergeResolutions(merged, res)
	}
	sort.Strings(merged.Targets)
	return merged
}

// resolveRelative handles level-L references: level 1 is the importing
// file's own package, each extra level pops one more segment. Roots do
// not apply; the location is fully determined by the importing file.
func (r *Resolver) resolveRelative(ref parser.Import, fromFile string) Resolution {
	segments := packageSegments(fromFile)
	pop := ref.Level - 1
	if pop > len(segments) {
		return Resolution{}
	}
	if pop > 0 {
		segments = segments[:len(segments)-pop]
	}
	base := strings.Join(segments, "/")
	if ref.Module != "" {
		base = path.Join(base, strings.ReplaceAll(ref.Module, ".", "/"))
	}

	if len(ref.Items) == 0 {
		return r.lookupAt(base)
	}
	merged := Resolution{}
	for _, item := range ref.Items {
		res := r.lookupAt(path.Join(base, item))
		if !res.Internal {
			res = r.lookupAt(base)
		}
		merged = mergeResolutions(merged, res)
	}
	sort.Strings(merged.Targets)
	return merged
}

// lookupDotted walks the root list in order; the first root with any
// match wins, matches across roots are never merged.
func (r *Resolver) lookupDotted(dotted string) Resolution {
	rel := strings.ReplaceAll(dotted, ".", "/")
	for _, root := range r.roots {
		if res := r.lookupAt(path.Join(root, rel)); res.Internal {
			return res
		}
	}
	return Resolution{}
}

// lookupAt tests one candidate location: module file first, package
// index second, namespace directory last.
func (r *Resolver) lookupAt(base string) Resolution {
	if base == "" || base == "." {
		return Resolution{}
	}
	for _, suffix := range r.profile.Suffixes {
		if candidate := base + suffix; r.files[candidate] {
			return Resolution{Internal: true, Targets: []string{candidate}}
		}
	}
	for _, index := range r.profile.IndexNames {
		if candidate := base + "/" + index; r.files[candidate] {
			return Resolution{Internal: true, Targets: []string{candidate}}
		}
	}
	if r.profile.Namespace && r.dirs[base] {
		return Resolution{Internal: true}
	}
	return Resolution{}
}

func mergeResolutions(a, b Resolution) Resolution {
	if !b.Internal {
		return a
	}
	a.Internal = true
	for _, target := range b.Targets {
		found := false
		for _, existing := range a.Targets {
			if existing == target {
				found = true
				break
			}
		}
		if !found {
			a.Targets = append(a.Targets, target)
		}
	}
	return a
}

// DisplayModule is a reference's reporting name: the declared module
// with its relative level rendered as leading dots.
func DisplayModule(ref parser.Import) string {
	if ref.Level > 0 {
		return strings.Repeat(".", ref.Level) + ref.Module
	}
	return ref.Module
}

func parentDir(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

func packageSegments(file string) []string {
	dir := parentDir(file)
	if dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}
