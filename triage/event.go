/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/octoguard/octoguard/breaker"
)

// Event is the part of an inbound webhook or repository_dispatch payload
// that the pipeline cares about. Everything in it is externally supplied
// and advisory; DispatchDepth in particular is only ever compared against
// the breaker threshold.
type Event struct {
	// Action is the event action ("opened", "edited", ...). Empty for
	// repository_dispatch events.
	Action string

	// Sender is the login of the actor that triggered the event.
	Sender string

	// DispatchDepth is the advisory automation-chain depth carried in the
	// client payload, 0 when absent or malformed.
	DispatchDepth int
}

// ParseEvent extracts an Event from a raw payload. The payload is
// untrusted: unknown fields are ignored and a malformed dispatch depth
// degrades to 0 rather than failing the run.
func ParseEvent(payload []byte) (Event, error) {
	var raw struct {
		Action string `json:"action"`
		Sender struct {
			Login string `json:"login"`
		} `json:"sender"`
		ClientPayload map[string]any `json:"client_payload"`
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Event{}, fmt.Errorf("decode event payload: %w", err)
	}

	ev := Event{
		Action: raw.Action,
		Sender: raw.Sender.Login,
	}
	if raw.ClientPayload != nil {
		ev.DispatchDepth = breaker.ParseDispatchDepth(raw.ClientPayload[breaker.DispatchPayloadDepthKey])
	}
	return ev, nil
}
