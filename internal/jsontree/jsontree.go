// Package jsontree provides the shared recursive primitives for walking
// parsed JSON documents. Values are the encoding/json union: nil, bool,
// float64, string, []any, map[string]any. Every transform in this repo is
// expressed through these primitives; nothing else recurses over the tree.
package jsontree

import (
	"encoding/json"
)

// Serialize renders a value to compact JSON text. Map keys come out sorted,
// so the result is deterministic and includes every nested key and value —
// suitable for substring matching against header names, URLs, and bodies.
func Serialize(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// AnyStringContains reports whether any string leaf in the tree satisfies
// pred. Object keys are not visited; they are covered by Serialize-based
// matching where key text matters.
func AnyStringContains(v any, pred func(string) bool) bool {
	switch vv := v.(type) {
	case map[string]any:
		for _, child := range vv {
			if AnyStringContains(child, pred) {
				return true
			}
		}
	case []any:
		for _, child := range vv {
			if AnyStringContains(child, pred) {
				return true
			}
		}
	case string:
		return pred(vv)
	}
	return false
}

// MapStrings returns a structurally identical tree with every string leaf
// replaced by fn(leaf). Containers are rebuilt, never mutated in place, so
// callers can keep the input tree intact.
func MapStrings(v any, fn func(string) string) any {
	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, child := range vv {
			out[k] = MapStrings(child, fn)
		}
		return out
	case []any:
		out := make([]any, 0, len(vv))
		for _, child := range vv {
			out = append(out, MapStrings(child, fn))
		}
		return out
	case string:
		return fn(vv)
	default:
		return v
	}
}

// FilterPairs removes offending children from the tree. For objects, a pair
// is dropped when drop(key, value) is true; for arrays, an element is
// dropped when drop("", element) is true. Survivors are recursed into.
// Containers emptied by deletion are kept, never collapsed — the document
// keeps its shape.
func FilterPairs(v any, drop func(key string, val any) bool) any {
	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, child := range vv {
			if drop(k, child) {
				continue
			}
			out[k] = FilterPairs(child, drop)
		}
		return out
	case []any:
		out := make([]any, 0, len(vv))
		for _, child := range vv {
			if drop("", child) {
				continue
			}
			out = append(out, FilterPairs(child, drop))
		}
		return out
	default:
		return v
	}
}
