// # internal/resolver/resolver_test.go
package resolver

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/da11an/repo-query-surface/internal/parser"
)

func TestDetectRoots(t *testing.T) {
	// Layout:
	// app.py
	// src/pkg/mod.py
	// tools/gen.py
	r := New(ProfileFor("python"), []string{
		"app.py",
		"src/pkg/mod.py",
		"tools/gen.py",
	}, nil, "")

	want := []string{"", "src", "tools"}
	if !reflect.DeepEqual(r.Roots(), want) {
		t.Errorf("Roots() = %v, expected %v", r.Roots(), want)
	}
}

func TestDetectRoots_ExtraRoots(t *testing.T) {
	// src/main/java exists below a discovered root and is appended;
	// the configured extra only counts when it holds analyzed files.
	r := New(ProfileFor("java"), []string{
		"src/main/java/com/example/App.java",
	}, []string{"lib", "src/main/java"}, "")

	want := []string{"", "src", "src/main/java"}
	if !reflect.DeepEqual(r.Roots(), want) {
		t.Errorf("Roots() = %v, expected %v", r.Roots(), want)
	}
}

func TestResolve_PythonAbsolute(t *testing.T) {
	files := []string{
		"app/__init__.py",
		"app/main.py",
		"app/util.py",
		"src/core/engine.py",
	}
	r := New(ProfileFor("python"), files, nil, "")

	tests := []struct {
		name    string
		ref     parser.Import
		targets []string
	}{
		{"module file", parser.Import{Module: "app.util"}, []string{"app/util.py"}},
		{"package index", parser.Import{Module: "app"}, []string{"app/__init__.py"}},
		{"src root", parser.Import{Module: "core.engine"}, []string{"src/core/engine.py"}},
		{"external", parser.Import{Module: "requests"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.ref, "app/main.py")
			if res.Internal != (tt.targets != nil) {
				t.Fatalf("Internal = %v for %v", res.Internal, tt.ref)
			}
			if !reflect.DeepEqual(res.Targets, tt.targets) {
				t.Errorf("Targets = %v, expected %v", res.Targets, tt.targets)
			}
		})
	}
}

func TestResolve_EmptyRootWinsOverDiscovered(t *testing.T) {
	// util.py exists both at the repo root and under src; the empty
	// root is evaluated first, so the top-level file wins.
	files := []string{
		"util.py",
		"src/util.py",
		"src/app.py",
	}
	r := New(ProfileFor("python"), files, nil, "")

	res := r.Resolve(parser.Import{Module: "util"}, "src/app.py")
	if !res.Internal || len(res.Targets) != 1 || res.Targets[0] != "util.py" {
		t.Errorf("Expected util.py from the empty root, got %v", res.Targets)
	}
}

func TestResolve_PythonFromImport(t *testing.T) {
	// from pkg import sub  -> pkg/sub.py (member is itself a module)
	// from pkg import CONST -> pkg/__init__.py (member is plain)
	files := []string{
		"pkg/__init__.py",
		"pkg/sub.py",
		"main.py",
	}
	r := New(ProfileFor("python"), files, nil, "")

	res := r.Resolve(parser.Import{Module: "pkg", Items: []string{"sub"}}, "main.py")
	if !reflect.DeepEqual(res.Targets, []string{"pkg/sub.py"}) {
		t.Errorf("Expected pkg/sub.py, got %v", res.Targets)
	}

	res = r.Resolve(parser.Import{Module: "pkg", Items: []string{"CONST"}}, "main.py")
	if !reflect.DeepEqual(res.Targets, []string{"pkg/__init__.py"}) {
		t.Errorf("Expected pkg/__init__.py, got %v", res.Targets)
	}

	// Mixed members bind both files.
	res = r.Resolve(parser.Import{Module: "pkg", Items: []string{"sub", "CONST"}}, "main.py")
	want := []string{"pkg/__init__.py", "pkg/sub.py"}
	if !reflect.DeepEqual(res.Targets, want) {
		t.Errorf("Expected %v, got %v", want, res.Targets)
	}
}

func TestResolve_PythonRelative(t *testing.T) {
	files := []string{
		"pkg/__init__.py",
		"pkg/util.py",
		"pkg/sub/__init__.py",
		"pkg/sub/mod.py",
		"pkg/sub/helper.py",
	}
	r := New(ProfileFor("python"), files, nil, "")

	tests := []struct {
		name    string
		ref     parser.Import
		from    string
		targets []string
	}{
		{
			// from . import helper
			"same package",
			parser.Import{Level: 1, Items: []string{"helper"}},
			"pkg/sub/mod.py",
			[]string{"pkg/sub/helper.py"},
		},
		{
			// from ..util import thing: level 2 pops one segment past
			// the current package
			"parent package module",
			parser.Import{Module: "util", Level: 2, Items: []string{"thing"}},
			"pkg/sub/mod.py",
			[]string{"pkg/util.py"},
		},
		{
			// from .. import util
			"parent package member",
			parser.Import{Level: 2, Items: []string{"util"}},
			"pkg/sub/mod.py",
			[]string{"pkg/util.py"},
		},
		{
			// from ... import x walks above the repo root
			"escapes repo",
			parser.Import{Module: "x", Level: 4},
			"pkg/sub/mod.py",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.ref, tt.from)
			if !reflect.DeepEqual(res.Targets, tt.targets) {
				t.Errorf("Targets = %v, expected %v", res.Targets, tt.targets)
			}
		})
	}
}

func TestResolve_NamespacePackage(t *testing.T) {
	// ns has analyzed files but no __init__.py: internal, no file edge.
	files := []string{
		"ns/mod.py",
		"main.py",
	}
	r := New(ProfileFor("python"), files, nil, "")

	res := r.Resolve(parser.Import{Module: "ns"}, "main.py")
	if !res.Internal {
		t.Fatal("Expected namespace package to resolve internal")
	}
	if len(res.Targets) != 0 {
		t.Errorf("Expected no file targets for namespace package, got %v", res.Targets)
	}
}

func TestResolve_JavaScript(t *testing.T) {
	files := []string{
		"src/main.js",
		"src/lib/foo.js",
		"src/shared/index.js",
		"src/config.mjs",
	}
	r := New(ProfileFor("javascript"), files, nil, "")

	tests := []struct {
		name    string
		spec    string
		targets []string
	}{
		{"exact specifier", "./lib/foo.js", []string{"src/lib/foo.js"}},
		{"suffix added", "./lib/foo", []string{"src/lib/foo.js"}},
		{"directory index", "./shared", []string{"src/shared/index.js"}},
		{"mjs suffix", "./config", []string{"src/config.mjs"}},
		{"bare package", "react", nil},
		{"escapes repo", "../../elsewhere", nil},
		{"url", "https://cdn.example.com/x.js", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(parser.Import{Module: tt.spec}, "src/main.js")
			if !reflect.DeepEqual(res.Targets, tt.targets) {
				t.Errorf("Targets = %v, expected %v", res.Targets, tt.targets)
			}
		})
	}
}

func TestResolve_TypeScriptJsSpecifier(t *testing.T) {
	// nodenext style: the source says ./store.js but the file on disk
	// is store.ts. TypeScript runs also include plain js files.
	files := []string{
		"src/app.ts",
		"src/store.ts",
		"src/legacy.js",
	}
	r := New(ProfileFor("typescript"), files, nil, "")

	res := r.Resolve(parser.Import{Module: "./store.js"}, "src/app.ts")
	if !reflect.DeepEqual(res.Targets, []string{"src/store.ts"}) {
		t.Errorf("Expected src/store.ts, got %v", res.Targets)
	}

	res = r.Resolve(parser.Import{Module: "./legacy"}, "src/app.ts")
	if !reflect.DeepEqual(res.Targets, []string{"src/legacy.js"}) {
		t.Errorf("Expected src/legacy.js, got %v", res.Targets)
	}
}

func TestResolve_GoPackage(t *testing.T) {
	files := []string{
		"main.go",
		"internal/auth/login.go",
		"internal/auth/token.go",
		"internal/auth/login_test.go",
	}
	r := New(ProfileFor("go"), files, nil, "github.com/test/proj")

	res := r.Resolve(parser.Import{Module: "github.com/test/proj/internal/auth"}, "main.go")
	want := []string{"internal/auth/login.go", "internal/auth/token.go"}
	if !reflect.DeepEqual(res.Targets, want) {
		t.Errorf("Expected %v, got %v", want, res.Targets)
	}

	// Root package import binds the root files.
	res = r.Resolve(parser.Import{Module: "github.com/test/proj"}, "internal/auth/login.go")
	if !reflect.DeepEqual(res.Targets, []string{"main.go"}) {
		t.Errorf("Expected main.go, got %v", res.Targets)
	}

	// Stdlib and third-party imports are external.
	for _, mod := range []string{"fmt", "github.com/other/pkg"} {
		if res := r.Resolve(parser.Import{Module: mod}, "main.go"); res.Internal {
			t.Errorf("Expected %s to be external", mod)
		}
	}
}

func TestResolve_Rust(t *testing.T) {
	files := []string{
		"src/main.rs",
		"src/model.rs",
		"src/graph/mod.rs",
		"src/graph/store.rs",
		"src/graph/layer.rs",
	}
	r := New(ProfileFor("rust"), files, nil, "")

	tests := []struct {
		name    string
		ref     parser.Import
		from    string
		targets []string
	}{
		{
			// use crate::graph::store
			"crate submodule",
			parser.Import{Module: "graph", Items: []string{"store"}},
			"src/main.rs",
			[]string{"src/graph/store.rs"},
		},
		{
			// use crate::model::Node: Node is an item inside model.rs
			"item falls back to module",
			parser.Import{Module: "model", Items: []string{"Node"}},
			"src/main.rs",
			[]string{"src/model.rs"},
		},
		{
			// mod graph; from main.rs
			"mod declaration to mod.rs",
			parser.Import{Module: "graph", Level: 1},
			"src/main.rs",
			[]string{"src/graph/mod.rs"},
		},
		{
			// use super::model::Node from graph/store.rs
			"super into parent",
			parser.Import{Module: "model", Items: []string{"Node"}, Level: 2},
			"src/graph/store.rs",
			[]string{"src/model.rs"},
		},
		{
			// use self::layer::assign from graph/mod.rs
			"self into own package",
			parser.Import{Module: "layer", Items: []string{"assign"}, Level: 1},
			"src/graph/mod.rs",
			[]string{"src/graph/layer.rs"},
		},
		{
			"external crate",
			parser.Import{Module: "serde", Items: []string{"Deserialize"}},
			"src/main.rs",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.ref, tt.from)
			if !reflect.DeepEqual(res.Targets, tt.targets) {
				t.Errorf("Targets = %v, expected %v", res.Targets, tt.targets)
			}
		})
	}
}

func TestResolve_JavaSourceRoot(t *testing.T) {
	files := []string{
		"src/main/java/com/example/App.java",
		"src/main/java/com/example/util/Text.java",
	}
	r := New(ProfileFor("java"), files, nil, "")

	res := r.Resolve(parser.Import{Module: "com.example.util.Text"}, "src/main/java/com/example/App.java")
	if !reflect.DeepEqual(res.Targets, []string{"src/main/java/com/example/util/Text.java"}) {
		t.Errorf("Expected Text.java, got %v", res.Targets)
	}

	// import static com.example.util.Text.shorten
	res = r.Resolve(parser.Import{Module: "com.example.util.Text", Items: []string{"shorten"}}, "src/main/java/com/example/App.java")
	if !reflect.DeepEqual(res.Targets, []string{"src/main/java/com/example/util/Text.java"}) {
		t.Errorf("Expected Text.java for static import, got %v", res.Targets)
	}

	if res := r.Resolve(parser.Import{Module: "java.util.List"}, "src/main/java/com/example/App.java"); res.Internal {
		t.Error("Expected java.util.List to be external")
	}
}

func TestResolve_CSSAndHTML(t *testing.T) {
	files := []string{
		"site/index.html",
		"site/css/site.css",
		"site/css/theme.css",
		"site/js/app.js",
	}

	css := New(ProfileFor("css"), files, nil, "")
	res := css.Resolve(parser.Import{Module: "theme.css"}, "site/css/site.css")
	if !reflect.DeepEqual(res.Targets, []string{"site/css/theme.css"}) {
		t.Errorf("Expected theme.css, got %v", res.Targets)
	}

	html := New(ProfileFor("html"), files, nil, "")
	tests := []struct {
		spec    string
		targets []string
	}{
		{"js/app.js", []string{"site/js/app.js"}},
		{"css/site.css?v=3", []string{"site/css/site.css"}},
		{"/site/js/app.js", []string{"site/js/app.js"}},
		{"https://cdn.example.com/lib.js", nil},
	}
	for _, tt := range tests {
		res := html.Resolve(parser.Import{Module: tt.spec}, "site/index.html")
		if !reflect.DeepEqual(res.Targets, tt.targets) {
			t.Errorf("Resolve(%q) = %v, expected %v", tt.spec, res.Targets, tt.targets)
		}
	}
}

func TestDisplayModule(t *testing.T) {
	tests := []struct {
		ref  parser.Import
		want string
	}{
		{parser.Import{Module: "app.util"}, "app.util"},
		{parser.Import{Module: "util", Level: 2}, "..util"},
		{parser.Import{Level: 1}, "."},
		{parser.Import{Module: "./lib/foo.js"}, "./lib/foo.js"},
	}
	for _, tt := range tests {
		if got := DisplayModule(tt.ref); got != tt.want {
			t.Errorf("DisplayModule(%v) = %q, expected %q", tt.ref, got, tt.want)
		}
	}
}

func TestGoModulePath(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module github.com/test/proj\n\ngo 1.24\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := GoModulePath(root); got != "github.com/test/proj" {
		t.Errorf("GoModulePath = %q, expected github.com/test/proj", got)
	}
	if got := GoModulePath(filepath.Join(root, "missing")); got != "" {
		t.Errorf("Expected empty module path, got %q", got)
	}
}
