/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/octoguard/octoguard/breaker"
)

// Dispatch delegates follow-up work onward via repository_dispatch,
// carrying the breaker state so the chain stays bounded. The depth check
// happens here as well as on receipt: a receiver that ignores the payload
// still never sees a depth past the threshold from a well-behaved sender.
func (t *Triager) Dispatch(ctx context.Context, owner, repo string, bctx breaker.Context) error {
	log := clog.FromContext(ctx).With("owner", owner).With("repo", repo)

	payload := breaker.NewDispatchPayload(bctx)
	if payload.DispatchDepth >= breaker.MaxDispatchDepth {
		breakerTrips.WithLabelValues(string(breaker.ReasonMaxDepth)).Inc()
		return &breaker.Error{
			Reason: breaker.ReasonMaxDepth,
			Detail: fmt.Sprintf("refusing to dispatch at depth %d", payload.DispatchDepth),
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling dispatch payload: %w", err)
	}
	raw := json.RawMessage(data)

	if t.dryRun {
		log.Infof("Dry run, would dispatch %q with payload %s", t.policy.DispatchEventType, raw)
		return nil
	}

	if _, _, err := t.gh.Repositories.Dispatch(ctx, owner, repo, github.DispatchRequestOptions{
		EventType:     t.policy.DispatchEventType,
		ClientPayload: &raw,
	}); err != nil {
		return fmt.Errorf("dispatching %q to %s/%s: %w", t.policy.DispatchEventType, owner, repo, err)
	}
	log.With("event_type", t.policy.DispatchEventType).
		With("dispatch_depth", payload.DispatchDepth).
		Info("Dispatched follow-up event")
	return nil
}
