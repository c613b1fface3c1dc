// Package validate checks the minimal HAR document shape. Validation is
// deliberately shallow: a log object holding an entries array. Anything
// stricter would reject the vendor-extended captures this toolkit exists to
// process.
package validate

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/harprep/harprep/internal/har"
)

var harShape = map[string]any{
	"type":     "object",
	"required": []any{"log"},
	"properties": map[string]any{
		"log": map[string]any{
			"type":     "object",
			"required": []any{"entries"},
			"properties": map[string]any{
				"entries": map[string]any{"type": "array"},
			},
		},
	},
}

// HasLogEntries is a cheap pre-parse sniff on the raw bytes.
func HasLogEntries(raw []byte) bool {
	return gjson.GetBytes(raw, "log.entries").IsArray()
}

// EntryCount returns the number of entries without a full decode, or 0 when
// the shape is absent.
func EntryCount(raw []byte) int {
	return int(gjson.GetBytes(raw, "log.entries.#").Int())
}

// Document validates the minimal HAR shape of raw JSON. The returned error
// wraps har.ErrSchema with the individual violations.
func Document(raw []byte) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(harShape))
	if err != nil {
		return fmt.Errorf("compile HAR shape schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", har.ErrParse, err)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return fmt.Errorf("%w: %s", har.ErrSchema, strings.Join(violations, "; "))
}
