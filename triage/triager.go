/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"context"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/octoguard/octoguard/agent"
	"github.com/octoguard/octoguard/breaker"
	"github.com/octoguard/octoguard/sanitize"
	"github.com/octoguard/octoguard/validate"
)

// Triager runs the trust boundary pipeline against GitHub resources.
type Triager struct {
	gh           *github.Client
	completer    agent.Completer
	policy       Policy
	modelTimeout time.Duration
	dryRun       bool
}

// Option configures a Triager.
type Option func(*Triager)

// WithPolicy sets the deployment policy.
func WithPolicy(p Policy) Option {
	return func(t *Triager) { t.policy = p }
}

// WithModelTimeout bounds each model call.
func WithModelTimeout(d time.Duration) Option {
	return func(t *Triager) { t.modelTimeout = d }
}

// WithDryRun disables all writes to GitHub; results are logged instead.
func WithDryRun(dryRun bool) Option {
	return func(t *Triager) { t.dryRun = dryRun }
}

// New creates a Triager.
func New(gh *github.Client, completer agent.Completer, opts ...Option) *Triager {
	t := &Triager{
		gh:           gh,
		completer:    completer,
		policy:       DefaultPolicy(),
		modelTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// sanitizeField sanitizes one untrusted field and records detections.
func sanitizeField(ctx context.Context, text, label string) sanitize.Result {
	res := sanitize.Sanitize(text, label)
	if len(res.Tags) > 0 {
		clog.FromContext(ctx).With("field", label).
			With("tags", res.Tags).
			Warn("Sanitizer flagged untrusted content")
		for _, tag := range res.Tags {
			sanitizerDetections.WithLabelValues(tag).Inc()
		}
	}
	return res
}

// completeLoop is the breaker-gated model loop shared by triage and
// review. Check runs before every iteration and Update exactly once after
// each completion; violating that order voids the breaker's guarantees.
// accept returns ok=true to stop with raw as the final output, or a
// correction note to append for the next attempt.
func (t *Triager) completeLoop(ctx context.Context, bctx breaker.Context, system, prompt string, accept func(raw string) (string, bool)) (string, breaker.Context, error) {
	log := clog.FromContext(ctx)
	for {
		if err := breaker.Check(bctx); err != nil {
			if reason, ok := breaker.TripReason(err); ok {
				breakerTrips.WithLabelValues(string(reason)).Inc()
			}
			return "", bctx, err
		}

		raw, err := breaker.WithTimeout(ctx, t.modelTimeout, "model_complete", func(ctx context.Context) (string, error) {
			return t.completer.Complete(ctx, agent.Request{System: system, Prompt: prompt})
		})
		if err != nil {
			if reason, ok := breaker.TripReason(err); ok {
				breakerTrips.WithLabelValues(string(reason)).Inc()
			}
			return "", bctx, err
		}

		bctx = breaker.Update(bctx, raw)

		correction, ok := accept(raw)
		if ok {
			return raw, bctx, nil
		}
		log.With("iteration", bctx.IterationCount).Info("Model output rejected, asking for a correction")
		prompt = prompt + "\n\n" + correction
	}
}

// acceptParseable accepts any response carrying a parseable JSON object
// and asks for a correction otherwise. Enum or label problems inside a
// parseable object are not re-asked: validation clamps them silently.
func acceptParseable(kind string) func(string) (string, bool) {
	return func(raw string) (string, bool) {
		if validate.ParseableObject(raw) {
			return "", true
		}
		validatorFallbacks.WithLabelValues(kind).Inc()
		return correctionNote, false
	}
}
