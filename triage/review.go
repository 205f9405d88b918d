/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/octoguard/octoguard/breaker"
	"github.com/octoguard/octoguard/validate"
	"github.com/waigani/diffparser"
)

// maxDiffFiles caps how many changed file names are surfaced to the model.
const maxDiffFiles = 100

// ReviewPR runs the full pipeline for a single pull request: gate on the
// actor, sanitize title, body and diff, prompt the model under the circuit
// breaker, validate its output, and post the findings as a comment. The
// returned result is nil when the PR was skipped or escalated.
func (t *Triager) ReviewPR(ctx context.Context, owner, repo string, number int, ev Event) (*validate.ReviewResult, error) {
	log := clog.FromContext(ctx).With("owner", owner).With("repo", repo).With("pr", number)
	ctx = clog.WithLogger(ctx, log)

	if t.policy.IsBot(ev.Sender) {
		log.With("sender", ev.Sender).Info("Skipping bot-initiated event")
		return nil, nil
	}

	pr, _, err := t.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request %s/%s#%d: %w", owner, repo, number, err)
	}

	stopped, err := t.stopRequested(ctx, owner, repo, number, pr.GetBody())
	if err != nil {
		return nil, err
	}
	if stopped {
		log.Info("Stop command present, skipping review")
		return nil, nil
	}

	rawDiff, _, err := t.gh.PullRequests.GetRaw(ctx, owner, repo, number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return nil, fmt.Errorf("fetching diff for %s/%s#%d: %w", owner, repo, number, err)
	}
	changedFiles := changedFileNames(rawDiff)

	bctx := breaker.NewContext(ev.DispatchDepth)

	title := sanitizeField(ctx, pr.GetTitle(), "pr title")
	body := sanitizeField(ctx, pr.GetBody(), "pr body")
	diff := sanitizeField(ctx, rawDiff, "pr diff")

	system, prompt := reviewPrompts(title, body, diff, changedFiles)
	raw, _, err := t.completeLoop(ctx, bctx, system, prompt, acceptParseable("review"))
	if err != nil {
		if reason, ok := breaker.TripReason(err); ok {
			log.With("reason", string(reason)).Warn("Circuit breaker tripped, escalating to a human")
			return nil, t.escalate(ctx, owner, repo, number, fmt.Sprintf("Automatic review stopped (%s). A human should look at this pull request.", reason))
		}
		return nil, fmt.Errorf("completing review for %s/%s#%d: %w", owner, repo, number, err)
	}

	result := validate.ValidateReviewOutput(raw)
	log.With("assessment", string(result.Assessment)).
		With("action", string(result.RecommendedAction)).
		With("security_issues", len(result.SecurityIssues)).
		With("quality_issues", len(result.QualityIssues)).
		Info("Review complete")

	if t.dryRun {
		log.Infof("Dry run, would comment:\n%s", renderReviewComment(result))
		return &result, nil
	}

	if result.NeedsHumanReview {
		if _, _, err := t.gh.Issues.AddLabelsToIssue(ctx, owner, repo, number, []string{validate.LabelNeedsHumanReview}); err != nil {
			return nil, fmt.Errorf("labeling %s/%s#%d for human review: %w", owner, repo, number, err)
		}
	}
	comment := &github.IssueComment{Body: github.Ptr(renderReviewComment(result))}
	if _, _, err := t.gh.Issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return nil, fmt.Errorf("commenting on %s/%s#%d: %w", owner, repo, number, err)
	}
	return &result, nil
}

// changedFileNames extracts scrubbed file names from a unified diff. An
// unparseable diff yields no names; the diff text itself still reaches the
// model inside its trust boundary.
func changedFileNames(rawDiff string) []string {
	parsed, err := diffparser.Parse(rawDiff)
	if err != nil {
		return nil
	}
	var names []string
	for _, f := range parsed.Files {
		if len(names) >= maxDiffFiles {
			break
		}
		name := f.NewName
		if name == "" {
			name = f.OrigName
		}
		if name == "" {
			continue
		}
		names = append(names, validate.SanitizeFilePath(name))
	}
	return names
}

// renderReviewComment renders a validated review result as the markdown
// comment posted back to the pull request. Only validated fields reach the
// output.
func renderReviewComment(result validate.ReviewResult) string {
	var b strings.Builder
	b.WriteString("## Automatic review\n\n")
	fmt.Fprintf(&b, "**Assessment:** %s\n", result.Assessment)
	fmt.Fprintf(&b, "**Recommended action:** %s\n", result.RecommendedAction)
	if result.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", result.Summary)
	}
	writeFindings(&b, "Security findings", result.SecurityIssues)
	writeFindings(&b, "Quality findings", result.QualityIssues)
	if len(result.Suggestions) > 0 {
		b.WriteString("\n### Suggestions\n\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&b, "- %s%s\n", location(s.File, s.Line), s.Description)
		}
	}
	if result.NeedsHumanReview {
		b.WriteString("\n> This pull request was flagged for human review.\n")
	}
	b.WriteString("\n<sub>Review is automated; content above was derived from untrusted input. Comment `/stop-automation` to opt out.</sub>\n")
	return b.String()
}

func writeFindings(b *strings.Builder, heading string, issues []validate.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", heading)
	for _, issue := range issues {
		fmt.Fprintf(b, "- **%s** %s%s\n", issue.Severity, location(issue.File, issue.Line), issue.Description)
	}
}

// location renders "`file:line` " or "`file` " for a finding, or nothing
// when the file is unknown.
func location(file string, line int) string {
	if file == "" || file == "unknown" {
		return ""
	}
	if line > 0 {
		return fmt.Sprintf("`%s:%d` ", file, line)
	}
	return fmt.Sprintf("`%s` ", file)
}
