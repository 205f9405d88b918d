/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"fmt"
	"os"
	"strings"

	"github.com/octoguard/octoguard/breaker"
	"gopkg.in/yaml.v3"
)

// Policy is per-deployment configuration. It can narrow the built-in
// allow-lists (fewer link domains, more accounts treated as bots) but
// never widens what validation accepts.
type Policy struct {
	// AllowedLinkDomains are the domains issue-body links may come from to
	// be surfaced to the model as context. Supports "*.domain" patterns.
	AllowedLinkDomains []string `yaml:"allowedLinkDomains"`

	// ExtraBotAccounts are deployment-specific automation accounts beyond
	// the built-in conventions.
	ExtraBotAccounts []string `yaml:"extraBotAccounts"`

	// DispatchEventType is the repository_dispatch event type used when
	// delegating work onward.
	DispatchEventType string `yaml:"dispatchEventType"`
}

// DefaultPolicy returns the policy used when no file is configured.
func DefaultPolicy() Policy {
	return Policy{
		AllowedLinkDomains: []string{"*.github.com", "*.githubusercontent.com", "pkg.go.dev"},
		DispatchEventType:  "octoguard-triage",
	}
}

// LoadPolicy reads a policy file, filling unset fields from the default
// policy. An empty path returns the default policy.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	var loaded Policy
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Policy{}, fmt.Errorf("parse policy file: %w", err)
	}
	if len(loaded.AllowedLinkDomains) > 0 {
		policy.AllowedLinkDomains = loaded.AllowedLinkDomains
	}
	if len(loaded.ExtraBotAccounts) > 0 {
		policy.ExtraBotAccounts = loaded.ExtraBotAccounts
	}
	if loaded.DispatchEventType != "" {
		policy.DispatchEventType = loaded.DispatchEventType
	}
	return policy, nil
}

// IsBot extends breaker.IsBot with the policy's extra accounts.
func (p Policy) IsBot(actor string) bool {
	if breaker.IsBot(actor) {
		return true
	}
	name := strings.ToLower(strings.TrimSpace(actor))
	for _, extra := range p.ExtraBotAccounts {
		if name == strings.ToLower(extra) {
			return true
		}
	}
	return false
}
