/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sanitize

import "regexp"

// Detection-only tags. Each corresponds to one entry in the pattern table.
const (
	TagInstructionOverride = "instruction-override"
	TagInstructionDiscard  = "instruction-discard"
	TagRoleOverride        = "role-override"
	TagSystemPromptRef     = "system-prompt-reference"
	TagFakeImportantMarker = "fake-important-marker"
	TagFakeSystemBlock     = "fake-system-block"
	TagMaintainerClaim     = "maintainer-claim"
	TagAdminOverride       = "admin-override"
	TagBypassClaim         = "bypass-claim"
	TagExploitMarker       = "exploit-marker"
	TagBase64Decode        = "base64-decode"
	TagAtobCall            = "atob-call"
)

// injectionPattern pairs a tag with the expression that detects it.
type injectionPattern struct {
	tag string
	re  *regexp.Regexp
}

// injectionPatterns is the fixed table of injection-intent heuristics.
// These are approximate by nature; false positives and negatives are
// expected. Matches only ever add tags, they never alter text, so a false
// positive costs a warning line in the prompt and nothing else.
var injectionPatterns = []injectionPattern{
	{TagInstructionOverride, regexp.MustCompile(`(?i)ignore\s+(?:all\s+)?previous\s+instructions`)},
	{TagInstructionDiscard, regexp.MustCompile(`(?i)disregard\s+(?:previous|prior|above|all)`)},
	{TagRoleOverride, regexp.MustCompile(`(?i)you\s+are\s+now`)},
	{TagSystemPromptRef, regexp.MustCompile(`(?i)system\s+prompt`)},
	{TagFakeImportantMarker, regexp.MustCompile(`(?i)important\s+(?:instruction|note|update|override)`)},
	{TagFakeSystemBlock, regexp.MustCompile(`(?i)-{3,}\s*begin\s+(?:system|admin|root)`)},
	{TagMaintainerClaim, regexp.MustCompile(`(?i)as\s+the\s+maintainer`)},
	{TagAdminOverride, regexp.MustCompile(`(?i)admin\s+override`)},
	{TagBypassClaim, regexp.MustCompile(`(?i)bypass\s+(?:security|filter|check)`)},
	{TagExploitMarker, regexp.MustCompile(`(?i)\b(?:pwned|hacked)\b`)},
	{TagBase64Decode, regexp.MustCompile(`(?i)base64\s+decode`)},
	{TagAtobCall, regexp.MustCompile(`(?i)atob\s*\(`)},
}

// DetectInjectionPatterns scans text against the fixed pattern table and
// returns the tags of every matching pattern, in table order. It never
// mutates its input; callers decide what a match means. Keeping the table
// behind this one function lets a smarter classifier replace it later
// without touching call sites.
func DetectInjectionPatterns(text string) []string {
	var tags []string
	for _, p := range injectionPatterns {
		if p.re.MatchString(text) {
			tags = append(tags, p.tag)
		}
	}
	return tags
}
