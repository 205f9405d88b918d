/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate

// LabelNeedsHumanReview is applied whenever validation falls back to a safe
// default, so a human always sees what automation could not handle.
const LabelNeedsHumanReview = "needs-human-review"

// AllowedLabels is the closed set of labels automation may ever apply.
// Model output naming any other label is silently dropped: unknown labels
// are never created, and a malicious label string never reaches the GitHub
// API.
var AllowedLabels = []string{
	"bug",
	"feature",
	"enhancement",
	"question",
	"documentation",
	"duplicate",
	"invalid",
	"wontfix",
	"spam",
	"security",
	"performance",
	"regression",
	"dependencies",
	"ci",
	"build",
	"testing",
	"refactor",
	"breaking-change",
	"good-first-issue",
	"help-wanted",
	"stale",
	"blocked",
	"needs-triage",
	"needs-more-info",
	"needs-reproduction",
	LabelNeedsHumanReview,
	"priority/critical",
	"priority/high",
	"priority/medium",
	"priority/low",
}

var allowedLabelSet = enumSet(AllowedLabels...)

// FilterLabels keeps only labels present in AllowedLabels, preserving
// order and dropping duplicates. Unknown values disappear without error.
func FilterLabels(labels []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := allowedLabelSet[l]; !ok {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
