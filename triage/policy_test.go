/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadPolicyEmptyPath(t *testing.T) {
	t.Parallel()

	got, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("LoadPolicy(\"\") = %v, want nil", err)
	}
	if diff := cmp.Diff(DefaultPolicy(), got); diff != "" {
		t.Errorf("LoadPolicy(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPolicyPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("extraBotAccounts:\n- my-org-bot\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy() = %v, want nil", err)
	}
	want := DefaultPolicy()
	want.ExtraBotAccounts = []string{"my-org-bot"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadPolicy() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPolicyBadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("allowedLinkDomains: {nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPolicy(path); err == nil {
		t.Error("LoadPolicy() = nil, want error")
	}
}

func TestPolicyIsBot(t *testing.T) {
	t.Parallel()

	policy := Policy{ExtraBotAccounts: []string{"My-Org-Bot"}}

	tests := []struct {
		actor string
		want  bool
	}{
		{"github-actions[bot]", true},
		{"dependabot", true},
		{"my-org-bot", true},
		{"MY-ORG-BOT", true},
		{"octocat", false},
		{"", false},
	}
	for _, test := range tests {
		if got := policy.IsBot(test.actor); got != test.want {
			t.Errorf("IsBot(%q) = %t, want %t", test.actor, got, test.want)
		}
	}
}
