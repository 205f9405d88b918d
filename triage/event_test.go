/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    Event
		wantErr bool
	}{{
		name:    "issue opened",
		payload: `{"action": "opened", "sender": {"login": "octocat"}}`,
		want:    Event{Action: "opened", Sender: "octocat"},
	}, {
		name:    "dispatch with depth",
		payload: `{"sender": {"login": "github-actions[bot]"}, "client_payload": {"dispatch_depth": 2, "iteration_count": 4}}`,
		want:    Event{Sender: "github-actions[bot]", DispatchDepth: 2},
	}, {
		name:    "depth as string",
		payload: `{"client_payload": {"dispatch_depth": "3"}}`,
		want:    Event{DispatchDepth: 3},
	}, {
		name:    "malformed depth degrades to zero",
		payload: `{"client_payload": {"dispatch_depth": {"nested": true}}}`,
		want:    Event{},
	}, {
		name:    "negative depth degrades to zero",
		payload: `{"client_payload": {"dispatch_depth": -7}}`,
		want:    Event{},
	}, {
		name:    "empty payload",
		payload: `{}`,
		want:    Event{},
	}, {
		name:    "not json",
		payload: `action=opened`,
		wantErr: true,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseEvent([]byte(test.payload))
			if (err != nil) != test.wantErr {
				t.Fatalf("ParseEvent() error = %v, wantErr %t", err, test.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseEvent() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
