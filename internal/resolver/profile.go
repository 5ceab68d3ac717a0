package resolver

// Profile describes one language's module system: which parsed files
// belong to a run, how import references name their targets, and which
// file layouts a target name can bind to. One run analyzes one profile.
type Profile struct {
	Name string

	// Languages are the parser languages whose files participate in a
	// run of this profile. Support languages ride along: a typescript
	// run also loads javascript files so cross-language edges resolve.
	Languages []string

	// Suffixes are tried, in order, to turn a module path into a file.
	Suffixes []string

	// IndexNames are package-index filenames tried after the suffixes.
	IndexNames []string

	// PathStyle marks specifier-based references (./x, ../x) instead of
	// dotted module names.
	PathStyle bool

	// BareRelative treats suffix-less bare specifiers as relative to
	// the importing file, the way css and html references work. Bare
	// specifiers in path-style profiles without it are external
	// packages.
	BareRelative bool

	// Namespace allows a directory of analyzed files to satisfy a
	// reference without an index file.
	Namespace bool

	// ExtraRoots are conventional source roots appended after the
	// discovered ones when they exist in the tree.
	ExtraRoots []string

	// SupportOnly profiles never win language auto-detection.
	SupportOnly bool
}

// Profiles lists every supported profile.
var Profiles = []*Profile{
	{
		Name:       "python",
		Languages:  []string{"python"},
		Suffixes:   []string{".py"},
		IndexNames: []string{"__init__.py"},
		Namespace:  true,
	},
	{
		Name:       "go",
		Languages:  []string{"go"},
		Suffixes:   []string{".go"},
		IndexNames: nil,
	},
	{
		Name:       "javascript",
		Languages:  []string{"javascript"},
		Suffixes:   []string{".js", ".jsx", ".mjs", ".cjs"},
		IndexNames: []string{"index.js", "index.jsx", "index.mjs", "index.cjs"},
		PathStyle:  true,
	},
	{
		Name:       "typescript",
		Languages:  []string{"typescript", "javascript"},
		Suffixes:   []string{".ts", ".tsx", ".js", ".jsx"},
		IndexNames: []string{"index.ts", "index.tsx", "index.js", "index.jsx"},
		PathStyle:  true,
	},
	{
		Name:       "java",
		Languages:  []string{"java"},
		Suffixes:   []string{".java"},
		ExtraRoots: []string{"src/main/java", "src/test/java"},
	},
	{
		Name:       "rust",
		Languages:  []string{"rust"},
		Suffixes:   []string{".rs"},
		IndexNames: []string{"mod.rs"},
		ExtraRoots: []string{"src"},
	},
	{
		Name:         "css",
		Languages:    []string{"css"},
		Suffixes:     []string{".css"},
		PathStyle:    true,
		BareRelative: true,
		SupportOnly:  true,
	},
	{
		Name:         "html",
		Languages:    []string{"html", "javascript", "css"},
		Suffixes:     []string{".js", ".css"},
		PathStyle:    true,
		BareRelative: true,
		SupportOnly:  true,
	},
}

// ProfileFor returns the profile with the given name, or nil.
func ProfileFor(name string) *Profile {
	for _, p := range Profiles {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ProfileNames returns every profile name in precedence order.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for _, p := range Profiles {
		names = append(names, p.Name)
	}
	return names
}

// includesLanguage reports whether files of a parser language belong to
// runs of this profile.
func (p *Profile) includesLanguage(language string) bool {
	for _, l := range p.Languages {
		if l == language {
			return true
		}
	}
	return false
}
