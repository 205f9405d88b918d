/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate_test

import (
	"strings"
	"testing"

	"github.com/octoguard/octoguard/validate"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced json block",
			in:   "Analysis follows.\n```json\n{\"a\": 1}\n```\ntrailing prose",
			want: `{"a": 1}`,
		},
		{
			name: "bare json",
			in:   `  {"a": 1}  `,
			want: `{"a": 1}`,
		},
		{
			name: "plain fence wrapping whole response",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "anonymous fence",
			in:   "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "unclosed fence",
			in:   "```json\n{\"a\": 1}",
			want: `{"a": 1}`,
		},
		{
			name: "multiline object in fence",
			in:   "```json\n{\n  \"a\": 1,\n  \"b\": 2\n}\n```",
			want: "{\n  \"a\": 1,\n  \"b\": 2\n}",
		},
		{
			name: "no json at all",
			in:   "just prose",
			want: "just prose",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := validate.ExtractJSON(tc.in); got != tc.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseEnumDefaults(t *testing.T) {
	t.Parallel()
	if got := validate.ParseClassification("escalate-immediately"); got != validate.ClassificationQuestion {
		t.Errorf("classification default: got %q", got)
	}
	if got := validate.ParsePriority(""); got != validate.PriorityMedium {
		t.Errorf("priority default: got %q", got)
	}
	if got := validate.ParseSeverity("catastrophic"); got != validate.SeverityMedium {
		t.Errorf("severity default: got %q", got)
	}
	if got := validate.ParseAssessment("APPROVE NOW"); got != validate.AssessmentComment {
		t.Errorf("assessment default: got %q", got)
	}
	if got := validate.ParseAction("force-merge"); got != validate.ActionHumanReview {
		t.Errorf("action default: got %q", got)
	}
}

func TestParseEnumMembers(t *testing.T) {
	t.Parallel()
	if got := validate.ParseAssessment(" Approve "); got != validate.AssessmentApprove {
		t.Errorf("got %q, want approve", got)
	}
	if got := validate.ParseAction("merge"); got != validate.ActionMerge {
		t.Errorf("got %q, want merge", got)
	}
	if got := validate.ParseSeverity("INFO"); got != validate.SeverityInfo {
		t.Errorf("got %q, want info", got)
	}
}

func TestFilterLabels(t *testing.T) {
	t.Parallel()
	in := []string{"bug", "not-a-real-label", "bug", "ci", "NEEDS-TRIAGE", "needs-triage"}
	got := validate.FilterLabels(in)
	want := []string{"bug", "ci", "needs-triage"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestOutputSchemaMentionsFields(t *testing.T) {
	t.Parallel()
	schema := validate.OutputSchema[validate.TriageOutput]()
	for _, field := range []string{"classification", "priority", "labels", "summary", "needs_human_review"} {
		if !strings.Contains(schema, field) {
			t.Errorf("schema missing field %q:\n%s", field, schema)
		}
	}
	reviewSchema := validate.OutputSchema[validate.ReviewOutput]()
	for _, field := range []string{"assessment", "recommended_action", "security_issues", "suggestions"} {
		if !strings.Contains(reviewSchema, field) {
			t.Errorf("review schema missing field %q", field)
		}
	}
}
