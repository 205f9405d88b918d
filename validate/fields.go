/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Field accessors for loosely-typed parsed output. Model output frequently
// gets types wrong (numbers as strings, scalars where lists belong); these
// helpers coerce what they safely can and drop the rest.

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

func boolField(obj map[string]any, key string) bool {
	if b, ok := obj[key].(bool); ok {
		return b
	}
	return false
}

// positiveInt accepts a positive integer in any of the shapes JSON decoding
// can produce (json.Number, float64, or a numeric string). Zero, negative,
// fractional-only, and non-numeric values report ok=false and the field is
// left unset.
func positiveInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil && i > 0 {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return positiveFromFloat(f)
		}
	case float64:
		return positiveFromFloat(n)
	case int:
		if n > 0 {
			return n, true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil && i > 0 {
			return int(i), true
		}
	}
	return 0, false
}

func positiveFromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	i := int(math.Floor(f))
	if i > 0 {
		return i, true
	}
	return 0, false
}

// stringList keeps only the string members of a decoded array.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// objectList keeps only the object members of a decoded array, capped at
// max entries. Malformed entries are dropped individually rather than
// failing the batch.
func objectList(v any, max int) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range items {
		if len(out) >= max {
			break
		}
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
