// Package har loads, validates, and writes HAR documents. A Document wraps
// the parsed JSON root; transforms operate on it through the accessors and
// the jsontree primitives.
package har

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrParse marks input that is not valid JSON.
	ErrParse = errors.New("input is not valid JSON")
	// ErrSchema marks a document without the log.entries shape.
	ErrSchema = errors.New("document does not look like a HAR file")
)

// Document is a parsed HAR file. The root is kept as a generic tree so
// unknown vendor keys survive a round trip untouched.
type Document struct {
	root map[string]any
}

// Read returns the file's contents with invalid UTF-8 sequences dropped.
// Captured traffic files occasionally carry stray bytes; they are skipped
// rather than failing the whole read.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return bytes.ToValidUTF8(data, nil), nil
}

// Parse decodes raw JSON into a Document.
func Parse(raw []byte) (*Document, error) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &Document{root: root}, nil
}

// FromRoot wraps an already-parsed tree. Used by tests and by transforms
// that rebuild the root.
func FromRoot(root map[string]any) *Document {
	return &Document{root: root}
}

// Root exposes the underlying tree for whole-document transforms.
func (d *Document) Root() map[string]any {
	return d.root
}

// SetRoot replaces the underlying tree.
func (d *Document) SetRoot(root map[string]any) {
	d.root = root
}

// Log returns the log object, if present.
func (d *Document) Log() (map[string]any, bool) {
	logVal, ok := d.root["log"].(map[string]any)
	return logVal, ok
}

// Entries returns log.entries, if the document has the expected shape.
func (d *Document) Entries() ([]any, bool) {
	logVal, ok := d.Log()
	if !ok {
		return nil, false
	}
	entries, ok := logVal["entries"].([]any)
	return entries, ok
}

// HasEntries reports whether the document carries a log.entries array.
func (d *Document) HasEntries() bool {
	_, ok := d.Entries()
	return ok
}

// SetEntries replaces log.entries. Returns ErrSchema when the document has
// no log object to hold them.
func (d *Document) SetEntries(entries []any) error {
	logVal, ok := d.Log()
	if !ok {
		return ErrSchema
	}
	logVal["entries"] = entries
	return nil
}

// Write serializes the document as indented JSON. The bytes go to a temp
// file in the target directory first and are renamed into place, so a failed
// run never leaves a truncated output file behind.
func Write(path string, d *Document) error {
	data, err := json.MarshalIndent(d.root, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".harprep-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DerivedPath builds the default output name for a transform:
// capture.har + "filtered" -> capture_filtered.json.
func DerivedPath(input, suffix string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return fmt.Sprintf("%s_%s.json", base, suffix)
}
