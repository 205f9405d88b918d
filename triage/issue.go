/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/octoguard/octoguard/breaker"
	"github.com/octoguard/octoguard/validate"
)

// recentCommentWindow bounds how many recent comments are scanned for stop
// commands before acting on an issue.
const recentCommentWindow = 20

// TriageIssue runs the full pipeline for a single issue: gate on the
// actor, sanitize, prompt the model under the circuit breaker, validate
// its output, and apply labels and a summary comment. The returned result
// is nil when the issue was skipped or escalated without triage.
func (t *Triager) TriageIssue(ctx context.Context, owner, repo string, number int, ev Event) (*validate.TriageResult, error) {
	log := clog.FromContext(ctx).With("owner", owner).With("repo", repo).With("issue", number)
	ctx = clog.WithLogger(ctx, log)

	if t.policy.IsBot(ev.Sender) {
		log.With("sender", ev.Sender).Info("Skipping bot-initiated event")
		return nil, nil
	}

	issue, _, err := t.gh.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching issue %s/%s#%d: %w", owner, repo, number, err)
	}
	if issue.IsPullRequest() {
		log.Info("Issue is a pull request, skipping triage")
		return nil, nil
	}

	stopped, err := t.stopRequested(ctx, owner, repo, number, issue.GetBody())
	if err != nil {
		return nil, err
	}
	if stopped {
		log.Info("Stop command present, skipping triage")
		return nil, nil
	}

	bctx := breaker.NewContext(ev.DispatchDepth)

	title := sanitizeField(ctx, issue.GetTitle(), "issue title")
	body := sanitizeField(ctx, issue.GetBody(), "issue body")
	links := allowedLinks(body.Text, t.policy.AllowedLinkDomains)

	system, prompt := triagePrompts(title, body, links)
	raw, _, err := t.completeLoop(ctx, bctx, system, prompt, acceptParseable("triage"))
	if err != nil {
		if reason, ok := breaker.TripReason(err); ok {
			log.With("reason", string(reason)).Warn("Circuit breaker tripped, escalating to a human")
			return nil, t.escalate(ctx, owner, repo, number, fmt.Sprintf("Automatic triage stopped (%s). A human should look at this issue.", reason))
		}
		return nil, fmt.Errorf("completing triage for %s/%s#%d: %w", owner, repo, number, err)
	}

	result := validate.ValidateTriageOutput(raw)
	log.With("classification", string(result.Classification)).
		With("priority", string(result.Priority)).
		With("labels", result.Labels).
		Info("Triage complete")

	if t.dryRun {
		log.Infof("Dry run, would comment:\n%s", renderTriageComment(result))
		return &result, nil
	}

	labels := append([]string{}, result.Labels...)
	if result.NeedsHumanReview && !slices.Contains(labels, validate.LabelNeedsHumanReview) {
		labels = append(labels, validate.LabelNeedsHumanReview)
	}
	if len(labels) > 0 {
		if _, _, err := t.gh.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels); err != nil {
			return nil, fmt.Errorf("adding labels to %s/%s#%d: %w", owner, repo, number, err)
		}
	}

	comment := &github.IssueComment{Body: github.Ptr(renderTriageComment(result))}
	if _, _, err := t.gh.Issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return nil, fmt.Errorf("commenting on %s/%s#%d: %w", owner, repo, number, err)
	}
	return &result, nil
}

// stopRequested reports whether the issue body or any recent comment
// carries a stop command.
func (t *Triager) stopRequested(ctx context.Context, owner, repo string, number int, body string) (bool, error) {
	if breaker.HasStopCommand(body) {
		return true, nil
	}
	comments, _, err := t.gh.Issues.ListComments(ctx, owner, repo, number, &github.IssueListCommentsOptions{
		Sort:      github.Ptr("created"),
		Direction: github.Ptr("desc"),
		ListOptions: github.ListOptions{
			PerPage: recentCommentWindow,
		},
	})
	if err != nil {
		return false, fmt.Errorf("listing comments on %s/%s#%d: %w", owner, repo, number, err)
	}
	for _, c := range comments {
		if breaker.HasStopCommand(c.GetBody()) {
			return true, nil
		}
	}
	return false, nil
}

// escalate applies the human-review label and leaves a short note.
func (t *Triager) escalate(ctx context.Context, owner, repo string, number int, note string) error {
	if t.dryRun {
		clog.FromContext(ctx).Infof("Dry run, would escalate: %s", note)
		return nil
	}
	if _, _, err := t.gh.Issues.AddLabelsToIssue(ctx, owner, repo, number, []string{validate.LabelNeedsHumanReview}); err != nil {
		return fmt.Errorf("labeling %s/%s#%d for human review: %w", owner, repo, number, err)
	}
	comment := &github.IssueComment{Body: github.Ptr(note)}
	if _, _, err := t.gh.Issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return fmt.Errorf("commenting on %s/%s#%d: %w", owner, repo, number, err)
	}
	return nil
}

// renderTriageComment renders a validated triage result as the markdown
// comment posted back to the issue. Only validated fields reach the
// output; nothing from the raw model response is interpolated.
func renderTriageComment(result validate.TriageResult) string {
	var b strings.Builder
	b.WriteString("## Automatic triage\n\n")
	fmt.Fprintf(&b, "**Classification:** %s\n", result.Classification)
	fmt.Fprintf(&b, "**Priority:** %s\n", result.Priority)
	if result.DuplicateOf > 0 {
		fmt.Fprintf(&b, "**Possible duplicate of:** #%d\n", result.DuplicateOf)
	}
	if result.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", result.Summary)
	}
	if result.NeedsHumanReview {
		b.WriteString("\n> This issue was flagged for human review.\n")
	}
	b.WriteString("\n<sub>Triage is automated; content above was derived from untrusted input. Comment `/stop-automation` to opt out.</sub>\n")
	return b.String()
}
