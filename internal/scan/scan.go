package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/da11an/repo-query-surface/internal/errors"
	"github.com/da11an/repo-query-surface/internal/parser"
	"github.com/da11an/repo-query-surface/internal/resolver"
)

// Result is one repository sweep: every parseable file under the root
// as a sorted, slash-separated, repo-relative path list, plus
// per-language counts feeding profile auto-detection.
type Result struct {
	Files      []string
	ByLanguage map[string]int
}

// Repo walks the repository root and collects files any registered
// language can parse. Exclude patterns match base names; a matching
// directory prunes its whole subtree. The root itself is never pruned.
func Repo(root string, excludeDirs, excludeFiles []string) (*Result, error) {
	dirGlobs, err := compilePatterns(excludeDirs)
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compilePatterns(excludeFiles)
	if err != nil {
		return nil, err
	}

	res := &Result{ByLanguage: make(map[string]int)}
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		base := filepath.Base(path)
		if d.IsDir() {
			if path == root {
				return nil
			}
			for _, g := range dirGlobs {
				if g.Match(base) {
					return filepath.SkipDir
				}
			}
			return nil
		}
		for _, g := range fileGlobs {
			if g.Match(base) {
				return nil
			}
		}
		lang := parser.DetectLanguage(path)
		if lang == "" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		res.Files = append(res.Files, filepath.ToSlash(rel))
		res.ByLanguage[lang]++
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrap(walkErr, errors.CodeScanFailed, "repository walk failed")
	}
	sort.Strings(res.Files)
	return res, nil
}

// FilesFor filters the sweep down to the files a profile's run loads,
// keeping support languages so cross-language references can resolve.
func (r *Result) FilesFor(p *resolver.Profile) []string {
	langs := make(map[string]bool, len(p.Languages))
	for _, l := range p.Languages {
		langs[l] = true
	}
	var files []string
	for _, f := range r.Files {
		if langs[parser.DetectLanguage(f)] {
			files = append(files, f)
		}
	}
	return files
}

// AutoDetect picks the profile owning the most scanned files. Support
// profiles never win; ties break by profile name ascending. Returns ""
// when no profile owns anything.
func AutoDetect(byLanguage map[string]int) string {
	best := 0
	bestName := ""
	for _, p := range resolver.Profiles {
		if p.SupportOnly {
			continue
		}
		owned := 0
		for _, l := range p.Languages {
			owned += byLanguage[l]
		}
		if owned == 0 {
			continue
		}
		if owned > best || (owned == best && p.Name < bestName) {
			best = owned
			bestName = p.Name
		}
	}
	return bestName
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigInvalid,
				fmt.Sprintf("invalid exclude pattern %q", p))
		}
		globs = append(globs, g)
	}
	return globs, nil
}
