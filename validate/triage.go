/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate

import "fmt"

// TriageResult is the validated, action-safe form of a triage response.
// Every field has been coerced into its closed vocabulary or clamped; the
// action layer may consume it without further checks.
type TriageResult struct {
	Classification   Classification
	Priority         Priority
	Labels           []string
	Summary          string
	Reasoning        string
	DuplicateOf      int // issue number, 0 when unset
	NeedsHumanReview bool
}

// TriageOutput is the wire shape the model is asked to emit. It exists for
// schema reflection in the prompt; incoming text is not decoded into it
// directly, since a single ill-typed field would reject the whole object.
type TriageOutput struct {
	Classification   string   `json:"classification" jsonschema:"enum=bug,enum=feature,enum=question,enum=documentation,enum=duplicate,enum=security,enum=invalid,enum=spam"`
	Priority         string   `json:"priority" jsonschema:"enum=critical,enum=high,enum=medium,enum=low"`
	Labels           []string `json:"labels"`
	Summary          string   `json:"summary"`
	Reasoning        string   `json:"reasoning,omitempty"`
	DuplicateOf      int      `json:"duplicate_of,omitempty" jsonschema:"description=Issue number this duplicates, if any"`
	NeedsHumanReview bool     `json:"needs_human_review"`
}

// ValidateTriageOutput parses raw model text into a TriageResult. It never
// panics and never returns an error: output that cannot be parsed degrades
// to a safe default that forces human review.
func ValidateTriageOutput(raw string) TriageResult {
	obj, ok := safeParseObject(ExtractJSON(raw))
	if !ok {
		return fallbackTriageResult("model output was not a JSON object")
	}
	return triageFromObject(obj)
}

func triageFromObject(obj map[string]any) TriageResult {
	res := TriageResult{
		Classification:   ParseClassification(stringField(obj, "classification")),
		Priority:         ParsePriority(stringField(obj, "priority")),
		Labels:           FilterLabels(stringList(obj["labels"])),
		Summary:          cleanText(stringField(obj, "summary"), MaxSummaryLength),
		Reasoning:        cleanText(stringField(obj, "reasoning"), MaxReasoningLength),
		NeedsHumanReview: boolField(obj, "needs_human_review"),
	}
	if n, ok := positiveInt(obj["duplicate_of"]); ok {
		res.DuplicateOf = n
	}
	return res
}

// fallbackTriageResult is the deterministic safe default for unparseable
// output: the most conservative classification, human review forced, and
// the failure reason surfaced as the summary.
func fallbackTriageResult(reason string) TriageResult {
	return TriageResult{
		Classification:   ClassificationQuestion,
		Priority:         PriorityMedium,
		Labels:           []string{LabelNeedsHumanReview},
		Summary:          cleanText(fmt.Sprintf("Automatic triage failed: %s", reason), MaxSummaryLength),
		NeedsHumanReview: true,
	}
}
