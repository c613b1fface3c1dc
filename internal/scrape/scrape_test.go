package scrape

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestManifest_TextFilesOnly(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "main.go", []byte("package main\n"))
	writeFixture(t, root, "docs/readme.md", []byte("# hello\n"))
	writeFixture(t, root, "logo.png", []byte("not really a png"))
	writeFixture(t, root, "blob.dat", []byte{1, 2, 3})
	writeFixture(t, root, "core.bin", []byte{0, 1, 2})
	writeFixture(t, root, ".git/config", []byte("[core]\n"))

	var out strings.Builder
	stats, err := Manifest(root, &out, Options{Label: "fixture"})
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if stats.Files != 2 {
		t.Fatalf("expected 2 files, got %+v", stats)
	}
	if stats.SkippedBinary != 3 {
		t.Fatalf("expected 3 binary skips, got %+v", stats)
	}

	text := out.String()
	if !strings.Contains(text, "# Source: fixture") {
		t.Fatalf("missing header: %s", text)
	}
	if !strings.Contains(text, "## Table of Contents") {
		t.Fatalf("missing table of contents")
	}
	if !strings.Contains(text, "File: docs/readme.md") || !strings.Contains(text, "package main") {
		t.Fatalf("missing file sections: %s", text)
	}
	if strings.Contains(text, ".git") {
		t.Fatalf(".git content leaked into manifest")
	}
}

func TestManifest_SkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "small.txt", []byte("ok\n"))
	writeFixture(t, root, "big.txt", []byte(strings.Repeat("a", 100)))

	var out strings.Builder
	stats, err := Manifest(root, &out, Options{MaxFileBytes: 50})
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if stats.Files != 1 || stats.SkippedLarge != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if strings.Contains(out.String(), "big.txt") {
		t.Fatalf("oversized file listed in manifest")
	}
}

func TestManifest_ExtraExcludedExtensions(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "trace.hex", []byte("0xdeadbeef\n"))
	writeFixture(t, root, "notes.txt", []byte("fine\n"))

	var out strings.Builder
	stats, err := Manifest(root, &out, Options{ExcludeExtensions: []string{".hex"}})
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if stats.Files != 1 || stats.SkippedBinary != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestManifest_SortedTableOfContents(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "b.txt", []byte("b\n"))
	writeFixture(t, root, "a.txt", []byte("a\n"))

	var out strings.Builder
	if _, err := Manifest(root, &out, Options{}); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	text := out.String()
	if strings.Index(text, "1. a.txt") < 0 || strings.Index(text, "1. a.txt") > strings.Index(text, "2. b.txt") {
		t.Fatalf("table of contents not sorted:\n%s", text)
	}
}
