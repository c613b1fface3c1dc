package report

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestRecorder_AppendsOneLinePerRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.ndjson")
	r := NewRecorder(path)

	raw := []byte(`{"log":{"entries":[]}}`)
	if err := r.Append("harfilter", "capture.har", raw, map[string]int{"kept": 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := r.Append("harclean", "capture.har", raw, nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("bad report line: %v", err)
		}
		entries = append(entries, e)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(entries))
	}
	if entries[0].Tool != "harfilter" || entries[1].Tool != "harclean" {
		t.Fatalf("unexpected tools: %+v", entries)
	}
	if entries[0].Digest != Digest(raw) || entries[0].Digest == "" {
		t.Fatalf("digest mismatch: %q", entries[0].Digest)
	}
}

func TestRecorder_NilIsDisabled(t *testing.T) {
	r := NewRecorder("")
	if r != nil {
		t.Fatalf("empty path should disable the recorder")
	}
	if err := r.Append("harfilter", "x", nil, nil); err != nil {
		t.Fatalf("nil recorder append: %v", err)
	}
}
