// Package filter implements the inclusion filter: keep only entries whose
// serialized form contains at least one of the search terms.
package filter

import (
	"fmt"
	"strings"

	"github.com/harprep/harprep/internal/har"
	"github.com/harprep/harprep/internal/jsontree"
)

// Stats reports the entry counts of a filter run. Kept+Removed == Original.
type Stats struct {
	Original int `json:"original"`
	Kept     int `json:"kept"`
	Removed  int `json:"removed"`
}

// Entries keeps every entry whose serialized text contains at least one
// keyword (OR across keywords). Matching covers header names and values,
// URLs, and bodies, because it runs over the entry's full serialized form.
// Entry order is preserved. An empty result is not an error.
func Entries(doc *har.Document, keywords []string, ignoreCase bool) (Stats, error) {
	entries, ok := doc.Entries()
	if !ok {
		return Stats{}, har.ErrSchema
	}

	terms := make([]string, len(keywords))
	for i, k := range keywords {
		if ignoreCase {
			k = strings.ToLower(k)
		}
		terms[i] = k
	}

	kept := make([]any, 0, len(entries))
	for _, entry := range entries {
		text, err := jsontree.Serialize(entry)
		if err != nil {
			return Stats{}, fmt.Errorf("serialize entry: %w", err)
		}
		if ignoreCase {
			text = strings.ToLower(text)
		}
		for _, term := range terms {
			if strings.Contains(text, term) {
				kept = append(kept, entry)
				break
			}
		}
	}

	if err := doc.SetEntries(kept); err != nil {
		return Stats{}, err
	}
	return Stats{
		Original: len(entries),
		Kept:     len(kept),
		Removed:  len(entries) - len(kept),
	}, nil
}
