/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate

import "strings"

// Classification is the closed vocabulary for issue triage.
type Classification string

const (
	ClassificationBug           Classification = "bug"
	ClassificationFeature       Classification = "feature"
	ClassificationQuestion      Classification = "question"
	ClassificationDocumentation Classification = "documentation"
	ClassificationDuplicate     Classification = "duplicate"
	ClassificationSecurity      Classification = "security"
	ClassificationInvalid       Classification = "invalid"
	ClassificationSpam          Classification = "spam"
)

// Priority is the closed vocabulary for issue priority.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Severity is the closed vocabulary for review findings.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Assessment is the closed vocabulary for an overall review verdict.
type Assessment string

const (
	AssessmentApprove        Assessment = "approve"
	AssessmentRequestChanges Assessment = "request-changes"
	AssessmentComment        Assessment = "comment"
)

// Action is the closed vocabulary for the recommended follow-up.
type Action string

const (
	ActionMerge          Action = "merge"
	ActionComment        Action = "comment"
	ActionRequestChanges Action = "request-changes"
	ActionClose          Action = "close"
	ActionHumanReview    Action = "human-review"
)

// Enum coercion is centralized here so every call site falls back the same
// way: lower-case the raw value, accept it if it is a member of the
// vocabulary, otherwise use the documented default. An unrecognized value
// is never passed through.

var classifications = enumSet(
	ClassificationBug, ClassificationFeature, ClassificationQuestion,
	ClassificationDocumentation, ClassificationDuplicate,
	ClassificationSecurity, ClassificationInvalid, ClassificationSpam,
)

var priorities = enumSet(PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow)

var severities = enumSet(SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo)

var assessments = enumSet(AssessmentApprove, AssessmentRequestChanges, AssessmentComment)

var actions = enumSet(ActionMerge, ActionComment, ActionRequestChanges, ActionClose, ActionHumanReview)

// ParseClassification coerces raw into the classification vocabulary,
// defaulting to "question".
func ParseClassification(raw string) Classification {
	return coerce(raw, classifications, ClassificationQuestion)
}

// ParsePriority coerces raw into the priority vocabulary, defaulting to
// "medium".
func ParsePriority(raw string) Priority {
	return coerce(raw, priorities, PriorityMedium)
}

// ParseSeverity coerces raw into the severity vocabulary, defaulting to
// "medium".
func ParseSeverity(raw string) Severity {
	return coerce(raw, severities, SeverityMedium)
}

// ParseAssessment coerces raw into the assessment vocabulary, defaulting to
// "comment".
func ParseAssessment(raw string) Assessment {
	return coerce(raw, assessments, AssessmentComment)
}

// ParseAction coerces raw into the action vocabulary, defaulting to
// "human-review".
func ParseAction(raw string) Action {
	return coerce(raw, actions, ActionHumanReview)
}

func enumSet[T ~string](members ...T) map[T]struct{} {
	set := make(map[T]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return set
}

func coerce[T ~string](raw string, set map[T]struct{}, fallback T) T {
	v := T(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := set[v]; ok {
		return v
	}
	return fallback
}
