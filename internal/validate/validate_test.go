package validate

import (
	"errors"
	"testing"

	"github.com/harprep/harprep/internal/har"
)

func TestDocument_ValidHAR(t *testing.T) {
	raw := []byte(`{"log":{"version":"1.2","entries":[{"request":{}}]}}`)
	if err := Document(raw); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestDocument_MissingEntries(t *testing.T) {
	cases := []string{
		`{"log":{}}`,
		`{"nolog":true}`,
		`{"log":{"entries":"not-an-array"}}`,
	}
	for _, raw := range cases {
		err := Document([]byte(raw))
		if !errors.Is(err, har.ErrSchema) {
			t.Fatalf("input %s: expected ErrSchema, got %v", raw, err)
		}
	}
}

func TestHasLogEntries(t *testing.T) {
	if !HasLogEntries([]byte(`{"log":{"entries":[]}}`)) {
		t.Fatalf("expected true for empty entries array")
	}
	if HasLogEntries([]byte(`{"log":{"entries":{}}}`)) {
		t.Fatalf("expected false for non-array entries")
	}
}

func TestEntryCount(t *testing.T) {
	raw := []byte(`{"log":{"entries":[{"a":1},{"b":2},{"c":3}]}}`)
	if got := EntryCount(raw); got != 3 {
		t.Fatalf("EntryCount = %d, want 3", got)
	}
	if got := EntryCount([]byte(`{}`)); got != 0 {
		t.Fatalf("EntryCount on non-HAR = %d, want 0", got)
	}
}
