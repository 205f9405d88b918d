/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate

import "fmt"

// Caps on nested finding lists.
const (
	MaxSecurityIssues = 50
	MaxQualityIssues  = 50
	MaxSuggestions    = 20
)

// Issue is one validated review finding.
type Issue struct {
	Severity    Severity
	Description string
	File        string // relative, scrubbed; "unknown" when absent
	Line        int    // 0 when unset
}

// Suggestion is one validated improvement suggestion.
type Suggestion struct {
	File        string
	Line        int
	Description string
}

// ReviewResult is the validated, action-safe form of a review response.
type ReviewResult struct {
	Assessment        Assessment
	RecommendedAction Action
	Summary           string
	SecurityIssues    []Issue
	QualityIssues     []Issue
	Suggestions       []Suggestion
	NeedsHumanReview  bool
}

// ReviewOutput is the wire shape the model is asked to emit; see
// TriageOutput for why decoding does not use it directly.
type ReviewOutput struct {
	Assessment        string             `json:"assessment" jsonschema:"enum=approve,enum=request-changes,enum=comment"`
	RecommendedAction string             `json:"recommended_action" jsonschema:"enum=merge,enum=comment,enum=request-changes,enum=close,enum=human-review"`
	Summary           string             `json:"summary"`
	SecurityIssues    []IssueOutput      `json:"security_issues,omitempty"`
	QualityIssues     []IssueOutput      `json:"quality_issues,omitempty"`
	Suggestions       []SuggestionOutput `json:"suggestions,omitempty"`
	NeedsHumanReview  bool               `json:"needs_human_review"`
}

// IssueOutput is the wire shape of a single finding.
type IssueOutput struct {
	Severity    string `json:"severity" jsonschema:"enum=critical,enum=high,enum=medium,enum=low,enum=info"`
	Description string `json:"description"`
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
}

// SuggestionOutput is the wire shape of a single suggestion.
type SuggestionOutput struct {
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
	Description string `json:"description"`
}

// ValidateReviewOutput parses raw model text into a ReviewResult. Like
// ValidateTriageOutput it never panics and never returns an error.
func ValidateReviewOutput(raw string) ReviewResult {
	obj, ok := safeParseObject(ExtractJSON(raw))
	if !ok {
		return fallbackReviewResult("model output was not a JSON object")
	}

	res := ReviewResult{
		Assessment:        ParseAssessment(stringField(obj, "assessment")),
		RecommendedAction: ParseAction(stringField(obj, "recommended_action")),
		Summary:           cleanText(stringField(obj, "summary"), MaxSummaryLength),
		NeedsHumanReview:  boolField(obj, "needs_human_review"),
	}
	for _, entry := range objectList(obj["security_issues"], MaxSecurityIssues) {
		res.SecurityIssues = append(res.SecurityIssues, issueFromObject(entry))
	}
	for _, entry := range objectList(obj["quality_issues"], MaxQualityIssues) {
		res.QualityIssues = append(res.QualityIssues, issueFromObject(entry))
	}
	for _, entry := range objectList(obj["suggestions"], MaxSuggestions) {
		s := Suggestion{
			File:        SanitizeFilePath(stringField(entry, "file")),
			Description: cleanText(stringField(entry, "description"), MaxDescriptionLength),
		}
		if n, ok := positiveInt(entry["line"]); ok {
			s.Line = n
		}
		res.Suggestions = append(res.Suggestions, s)
	}
	return res
}

func issueFromObject(obj map[string]any) Issue {
	issue := Issue{
		Severity:    ParseSeverity(stringField(obj, "severity")),
		Description: cleanText(stringField(obj, "description"), MaxDescriptionLength),
		File:        SanitizeFilePath(stringField(obj, "file")),
	}
	if n, ok := positiveInt(obj["line"]); ok {
		issue.Line = n
	}
	return issue
}

// fallbackReviewResult mirrors fallbackTriageResult for review output:
// never approve, never merge, always a human.
func fallbackReviewResult(reason string) ReviewResult {
	return ReviewResult{
		Assessment:        AssessmentComment,
		RecommendedAction: ActionHumanReview,
		Summary:           cleanText(fmt.Sprintf("Automatic review failed: %s", reason), MaxSummaryLength),
		NeedsHumanReview:  true,
	}
}
