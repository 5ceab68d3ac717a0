package util

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// NormalizePatternPath cleans and normalizes paths for matcher/pattern usage.
func NormalizePatternPath(s string) string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(s, "\\", "/"))
	clean := path.Clean(trimmed)
	if clean == "." {
		return ""
	}
	return strings.TrimPrefix(clean, "./")
}

// SortedStringKeys returns the map's keys in sorted order.
func SortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// StatePath returns a path under the per-user state directory
// (XDG_STATE_HOME or ~/.local/state), falling back to the working
// directory when neither is available.
func StatePath(parts ...string) string {
	elems := append([]string{"rqsmap"}, parts...)

	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(append([]string{xdg}, elems...)...)
	}
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(append([]string{home, ".local", "state"}, elems...)...)
	}
	return filepath.Join(parts...)
}

// WriteFileWithDirs creates parent directories (0755) and writes the file with perm.
func WriteFileWithDirs(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, perm)
}
