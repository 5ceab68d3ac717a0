// # internal/watcher/watcher_test.go
package watcher

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	tmpDir, _ := os.MkdirTemp("", "watchertest")
	defer os.RemoveAll(tmpDir)

	changedFiles := make(chan []string, 4)
	w, err := NewWatcher(100*time.Millisecond, []string{"vendor"}, []string{"ignore_*.py"}, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	err = w.Watch([]string{tmpDir})
	if err != nil {
		t.Fatal(err)
	}

	// A supported source file triggers a batch.
	testFile := filepath.Join(tmpDir, "app.py")
	os.WriteFile(testFile, []byte("import os\n"), 0644)

	select {
	case paths := <-changedFiles:
		found := false
		for _, p := range paths {
			if p == testFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected to find %s in changed files %v", testFile, paths)
		}
		if !sort.StringsAreSorted(paths) {
			t.Errorf("Expected sorted batch, got %v", paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timed out waiting for file change event")
	}

	// Files without a recognized source language stay silent.
	os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("plain text"), 0644)

	select {
	case paths := <-changedFiles:
		for _, p := range paths {
			if filepath.Base(p) == "notes.txt" {
				t.Error("Unsupported file triggered event")
			}
		}
	case <-time.After(500 * time.Millisecond):
		// Expected
	}

	// Exclusion globs suppress matching source files too.
	os.WriteFile(filepath.Join(tmpDir, "ignore_me.py"), []byte("import sys\n"), 0644)

	select {
	case paths := <-changedFiles:
		for _, p := range paths {
			if filepath.Base(p) == "ignore_me.py" {
				t.Error("Excluded file triggered event")
			}
		}
	case <-time.After(500 * time.Millisecond):
		// Expected
	}

	// New directory should be recursively watched after create.
	subdir := filepath.Join(tmpDir, "pkg")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}
	subFile := filepath.Join(subdir, "nested.py")
	if err := os.WriteFile(subFile, []byte("from app import main\n"), 0644); err != nil {
		t.Fatal(err)
	}

	foundNested := false
	timeout := time.After(2 * time.Second)
	for !foundNested {
		select {
		case paths := <-changedFiles:
			for _, p := range paths {
				if p == subFile {
					foundNested = true
					break
				}
			}
		case <-timeout:
			t.Fatal("timed out waiting for nested file event in newly created directory")
		}
	}
}

func TestWatcher_InvalidPattern(t *testing.T) {
	_, err := NewWatcher(100*time.Millisecond, []string{"["}, nil, func([]string) {})
	if err == nil {
		t.Fatal("expected error for invalid exclude pattern")
	}
}
