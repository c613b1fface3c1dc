// Package scrape flattens a directory tree into a single text manifest:
// a table of contents followed by every text file's content under a ruled
// banner. Binary and oversized files are skipped, not failed on.
package scrape

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultMaxFileBytes caps how large a single file may be before it is
// skipped outright.
const DefaultMaxFileBytes = 10 << 20

const banner = "================================================================================"

// binaryExtensions short-circuits the content sniff for well-known formats.
var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".tiff": {}, ".webp": {},
	".dll": {}, ".exe": {}, ".bin": {}, ".so": {}, ".dylib": {},
	".onnx": {}, ".pt": {}, ".pth": {}, ".h5": {}, ".pb": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".xz": {}, ".7z": {}, ".rar": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wav": {}, ".flac": {},
	".db": {}, ".sqlite": {}, ".dat": {},
}

// Options tunes a scrape run.
type Options struct {
	// MaxFileBytes skips files larger than this. Zero means the default cap.
	MaxFileBytes int64
	// ExcludeExtensions adds extensions (with leading dot) to the binary set.
	ExcludeExtensions []string
	// Label names the source in the manifest header; defaults to the root path.
	Label string
}

// Stats reports what a scrape run included and skipped.
type Stats struct {
	Files         int `json:"files"`
	SkippedBinary int `json:"skipped_binary"`
	SkippedLarge  int `json:"skipped_large"`
}

type fileInfo struct {
	rel  string
	size int64
}

// Manifest walks root and writes the manifest to w. The walk skips .git
// directories; unreadable files count as binary and are skipped rather than
// aborting the run.
func Manifest(root string, w io.Writer, opts Options) (Stats, error) {
	maxBytes := opts.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	excluded := make(map[string]struct{}, len(opts.ExcludeExtensions))
	for _, ext := range opts.ExcludeExtensions {
		excluded[strings.ToLower(ext)] = struct{}{}
	}
	label := opts.Label
	if label == "" {
		label = root
	}

	var stats Stats
	var files []fileInfo
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if isBinary(path, excluded) {
			stats.SkippedBinary++
			return nil
		}
		info, err := d.Info()
		if err != nil {
			stats.SkippedBinary++
			return nil
		}
		if info.Size() > maxBytes {
			stats.SkippedLarge++
			return nil
		}
		files = append(files, fileInfo{rel: filepath.ToSlash(rel), size: info.Size()})
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })

	fmt.Fprintf(w, "# Source: %s\n", label)
	fmt.Fprintf(w, "# Generated on: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "## Table of Contents\n\n")
	for i, f := range files {
		fmt.Fprintf(w, "%d. %s (%.2f KB)\n", i+1, f.rel, float64(f.size)/1024)
	}

	for _, f := range files {
		if err := writeFileSection(w, root, f); err != nil {
			return stats, err
		}
		stats.Files++
	}
	return stats, nil
}

func writeFileSection(w io.Writer, root string, f fileInfo) error {
	path := filepath.Join(root, filepath.FromSlash(f.rel))
	fmt.Fprintf(w, "\n\n%s\n", banner)
	fmt.Fprintf(w, "File: %s\n", f.rel)

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "%s\n\nError reading file: %v\n", banner, err)
		return nil
	}
	if !utf8.Valid(content) {
		fmt.Fprintf(w, "%s\n\nBinary file or non-UTF-8 encoded text file, skipped.\n", banner)
		return nil
	}

	lines := bytes.Count(content, []byte{'\n'})
	if len(content) > 0 && content[len(content)-1] != '\n' {
		lines++
	}
	modified := "unknown"
	if info, err := os.Stat(path); err == nil {
		modified = info.ModTime().Format("2006-01-02 15:04:05")
	}
	fmt.Fprintf(w, "Size: %.2f KB | Lines: %d | Last Modified: %s\n", float64(f.size)/1024, lines, modified)
	fmt.Fprintf(w, "%s\n\n", banner)
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// isBinary decides by extension first, then by a NUL sniff of the first
// 1 KiB. Unreadable files are treated as binary.
func isBinary(path string, extraExcluded map[string]struct{}) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := binaryExtensions[ext]; ok {
		return true
	}
	if _, ok := extraExcluded[ext]; ok {
		return true
	}

	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()
	chunk := make([]byte, 1024)
	n, err := f.Read(chunk)
	if err != nil && err != io.EOF {
		return true
	}
	return bytes.IndexByte(chunk[:n], 0) >= 0
}
