/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"regexp"
	"strings"

	"github.com/octoguard/octoguard/sanitize"
)

// Per-field caps for free-text fields, in runes.
const (
	MaxSummaryLength     = 2000
	MaxReasoningLength   = 1000
	MaxDescriptionLength = 500

	ellipsis = "..."
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// cleanText prepares a free-text field from model output for rendering:
// shell metacharacters are deleted, whitespace runs collapse to single
// spaces, and the result is hard-truncated at max runes with a trailing
// ellipsis.
func cleanText(raw string, max int) string {
	s := sanitize.StripShellMetacharacters(raw)
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > max {
		s = string(runes[:max]) + ellipsis
	}
	return s
}
