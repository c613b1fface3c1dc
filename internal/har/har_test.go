package har

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"log": [truncated`))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestRead_SkipsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.har")
	content := append([]byte(`{"log":{"en`), 0xff, 0xfe)
	content = append(content, []byte(`tries":[]}}`)...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	raw, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != `{"log":{"entries":[]}}` {
		t.Fatalf("invalid bytes not skipped: %q", raw)
	}
}

func TestDocument_EntriesAccessors(t *testing.T) {
	doc, err := Parse([]byte(`{"log":{"entries":[{"time":1},{"time":2}]}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	entries, ok := doc.Entries()
	if !ok || len(entries) != 2 {
		t.Fatalf("unexpected entries: %v %v", entries, ok)
	}

	if err := doc.SetEntries(entries[:1]); err != nil {
		t.Fatalf("set entries: %v", err)
	}
	entries, _ = doc.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries not replaced: %v", entries)
	}
}

func TestDocument_SetEntriesWithoutLog(t *testing.T) {
	doc, err := Parse([]byte(`{"not_a_har":true}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.HasEntries() {
		t.Fatalf("expected no entries")
	}
	if err := doc.SetEntries(nil); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(`{"log":{"version":"1.2","entries":[{"request":{"url":"https://example.com"}}]}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := Write(path, doc); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	round, err := Parse(raw)
	if err != nil {
		t.Fatalf("round trip parse: %v", err)
	}
	entries, ok := round.Entries()
	if !ok || len(entries) != 1 {
		t.Fatalf("round trip lost entries: %v", entries)
	}
}

func TestDerivedPath(t *testing.T) {
	cases := []struct {
		input, suffix, want string
	}{
		{"capture.har", "filtered", "capture_filtered.json"},
		{"dump.txt", "clean", "dump_clean.json"},
		{"noext", "redacted", "noext_redacted.json"},
	}
	for _, tc := range cases {
		if got := DerivedPath(tc.input, tc.suffix); got != tc.want {
			t.Fatalf("DerivedPath(%q, %q) = %q, want %q", tc.input, tc.suffix, got, tc.want)
		}
	}
}
