/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls JSON content out of model text that may wrap it in a
// markdown code fence. It looks for a ```json fence on its own line and
// collects content until the closing fence; failing that it trims any
// surrounding fence markers and returns the remainder for the caller to
// parse.
func ExtractJSON(text string) string {
	var body strings.Builder
	inFence := false
	for line := range strings.Lines(text) {
		trimmed := strings.TrimSuffix(line, "\n")
		if !inFence && strings.TrimSpace(trimmed) == "```json" {
			inFence = true
			continue
		}
		if inFence {
			if strings.TrimSpace(trimmed) == "```" {
				return strings.TrimSpace(body.String())
			}
			body.WriteString(line)
		}
	}
	if inFence {
		// Unclosed fence; use what was collected.
		return strings.TrimSpace(body.String())
	}

	// No fenced block. Strip stray fence markers and treat the rest as JSON.
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// ParseableObject reports whether raw model text carries a parseable JSON
// object. Callers use it to decide between acting on a validated result
// and asking the model to correct itself; validation itself never fails
// either way.
func ParseableObject(raw string) bool {
	_, ok := safeParseObject(ExtractJSON(raw))
	return ok
}

// safeParseObject parses text as a JSON object without ever panicking or
// surfacing an error. It returns ok=false for anything that is not a JSON
// object, including valid JSON of another kind (arrays, strings).
func safeParseObject(text string) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
