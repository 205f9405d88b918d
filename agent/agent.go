/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agent

import "context"

// Request is one completion request. The prompt is assembled by the caller
// and already carries trust boundaries around untrusted content.
type Request struct {
	// System holds system-level instructions. Always developer-authored.
	System string

	// Prompt is the user-turn content, including wrapped untrusted fields.
	Prompt string

	// MaxTokens caps the response length. Zero means the provider default.
	MaxTokens int64
}

// Completer produces a single text completion for a request. The returned
// string is raw, untrusted model output; callers must run it through the
// validate package before acting on it.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// defaultMaxTokens applies when a request does not set MaxTokens.
const defaultMaxTokens = 4096
