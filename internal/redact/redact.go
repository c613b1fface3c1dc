// Package redact removes a literal secret from a HAR document at one of
// three granularities: substring replacement, key/value pair deletion, or
// whole-entry deletion. Matching is exact, case-sensitive substring search —
// the secret is a literal, never a pattern. One secret per run; callers with
// several secrets apply the redactor repeatedly, each pass over the previous
// pass's output.
package redact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harprep/harprep/internal/har"
	"github.com/harprep/harprep/internal/jsontree"
)

const defaultReplacement = "[REDACTED]"

// Mode selects the redaction granularity. Exactly one runs per invocation.
type Mode string

const (
	// ModeReplace rewrites every occurrence of the secret inside string
	// leaves, leaving structure untouched.
	ModeReplace Mode = "replace"
	// ModeDeleteLine removes the key/value pair (or array element) carrying
	// the secret. Containers emptied this way are kept, not collapsed.
	ModeDeleteLine Mode = "delete-line"
	// ModeDeleteEntry removes whole entries whose serialized text contains
	// the secret.
	ModeDeleteEntry Mode = "delete-req"
)

// Redactor applies one redaction mode for one secret.
type Redactor struct {
	mode        Mode
	secret      string
	replacement string
}

// Result reports what a redaction pass did. Warnings carry the degraded
// cases that do not abort the run.
type Result struct {
	Mode     Mode     `json:"mode"`
	Replaced int      `json:"replaced,omitempty"` // string leaves rewritten
	Removed  int      `json:"removed"`            // pairs/elements or entries removed
	Original int      `json:"original,omitempty"` // entry count before, delete-req only
	Warnings []string `json:"warnings,omitempty"`
}

// New builds a Redactor. The replacement text is only meaningful for
// ModeReplace; empty means the default mask.
func New(mode Mode, secret, replacement string) (*Redactor, error) {
	if secret == "" {
		return nil, errors.New("secret must not be empty")
	}
	switch mode {
	case ModeReplace, ModeDeleteLine, ModeDeleteEntry:
	default:
		return nil, fmt.Errorf("unknown redaction mode %q", mode)
	}
	if replacement == "" {
		replacement = defaultReplacement
	}
	return &Redactor{mode: mode, secret: secret, replacement: replacement}, nil
}

// Apply runs the configured mode over the document in one pass.
func (r *Redactor) Apply(doc *har.Document) (Result, error) {
	switch r.mode {
	case ModeReplace:
		return r.replace(doc), nil
	case ModeDeleteLine:
		return r.deleteLine(doc), nil
	case ModeDeleteEntry:
		return r.deleteEntries(doc)
	default:
		return Result{}, fmt.Errorf("unknown redaction mode %q", r.mode)
	}
}

// replace rewrites the whole document, not just the entries: secrets can sit
// in log-level metadata too.
func (r *Redactor) replace(doc *har.Document) Result {
	res := Result{Mode: ModeReplace}
	root := jsontree.MapStrings(doc.Root(), func(s string) string {
		if !strings.Contains(s, r.secret) {
			return s
		}
		res.Replaced++
		return strings.ReplaceAll(s, r.secret, r.replacement)
	})
	doc.SetRoot(root.(map[string]any))
	return res
}

// deleteLine drops object pairs whose key or string value contains the
// secret, and array elements that are strings containing it. Non-string
// array elements are recursed into but never removed for nested matches;
// this asymmetry with object pairs is intentional and matches the tool's
// established behavior.
func (r *Redactor) deleteLine(doc *har.Document) Result {
	res := Result{Mode: ModeDeleteLine}
	root := jsontree.FilterPairs(doc.Root(), func(key string, val any) bool {
		if strings.Contains(key, r.secret) {
			res.Removed++
			return true
		}
		if s, ok := val.(string); ok && strings.Contains(s, r.secret) {
			res.Removed++
			return true
		}
		return false
	})
	doc.SetRoot(root.(map[string]any))
	return res
}

// deleteEntries removes whole entries whose serialized text contains the
// secret. A document without log.entries degrades to a warning: the other
// modes could still have done useful work on such a file, so this one is not
// allowed to abort the run either.
func (r *Redactor) deleteEntries(doc *har.Document) (Result, error) {
	res := Result{Mode: ModeDeleteEntry}
	entries, ok := doc.Entries()
	if !ok {
		res.Warnings = append(res.Warnings, "document has no log.entries; nothing removed")
		return res, nil
	}
	res.Original = len(entries)

	kept := make([]any, 0, len(entries))
	for _, entry := range entries {
		text, err := jsontree.Serialize(entry)
		if err != nil {
			return Result{}, fmt.Errorf("serialize entry: %w", err)
		}
		if strings.Contains(text, r.secret) {
			res.Removed++
			continue
		}
		kept = append(kept, entry)
	}
	if err := doc.SetEntries(kept); err != nil {
		return Result{}, err
	}
	return res, nil
}
