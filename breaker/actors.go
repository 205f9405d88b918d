/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package breaker

import "strings"

// knownBotAccounts are automation accounts that do not follow the generic
// "[bot]" suffix convention. Matching is case-insensitive and exact.
var knownBotAccounts = map[string]struct{}{
	"github-actions":     {},
	"dependabot":         {},
	"renovate":           {},
	"copilot":            {},
	"copilot-swe-agent":  {},
	"github-merge-queue": {},
	"web-flow":           {},
}

// IsBot reports whether actorName looks like an automation account. An
// agent must never react to actions taken by itself or another automation:
// bot-reacts-to-bot is the unbounded-loop vector that dispatch depth alone
// cannot catch within a single repository.
func IsBot(actorName string) bool {
	name := strings.ToLower(strings.TrimSpace(actorName))
	if name == "" {
		return false
	}
	if strings.HasSuffix(name, "[bot]") {
		return true
	}
	_, ok := knownBotAccounts[name]
	return ok
}

// stopCommands are the human-override tokens. Any one of them, anywhere in
// a body or comment, halts automation for that resource.
var stopCommands = []string{
	"[stop automation]",
	"/stop-automation",
	"[no-bots]",
	"stop the bot",
}

// HasStopCommand reports whether text contains a human stop command
// (case-insensitive substring match). A stop command takes unconditional
// priority over every other decision in this package.
func HasStopCommand(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, cmd := range stopCommands {
		if strings.Contains(lower, cmd) {
			return true
		}
	}
	return false
}
