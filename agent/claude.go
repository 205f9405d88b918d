/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

// Claude is a Completer backed by the Anthropic Messages API.
type Claude struct {
	client      anthropic.Client
	model       string
	temperature float64
	retryConfig RetryConfig
	metrics     *genAIMetrics
}

// ClaudeOption configures a Claude completer.
type ClaudeOption func(*Claude)

// WithClaudeModel overrides the default model.
func WithClaudeModel(model string) ClaudeOption {
	return func(c *Claude) { c.model = model }
}

// WithClaudeRetryConfig overrides the default retry policy.
func WithClaudeRetryConfig(cfg RetryConfig) ClaudeOption {
	return func(c *Claude) { c.retryConfig = cfg }
}

// NewClaude creates a Claude completer from an existing client.
func NewClaude(client anthropic.Client, opts ...ClaudeOption) *Claude {
	c := &Claude{
		client:      client,
		model:       "claude-sonnet-4-20250514",
		temperature: 0.1,
		retryConfig: DefaultRetryConfig(),
		metrics:     newGenAIMetrics("octoguard.agent"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete implements Completer.
func (c *Claude) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(req.Prompt),
			},
		}},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	message, err := RetryWithBackoff(ctx, c.retryConfig, "claude_complete", isRetryableClaudeError, func() (*anthropic.Message, error) {
		return c.client.Messages.New(ctx, params)
	})
	if err != nil {
		return "", fmt.Errorf("claude completion: %w", err)
	}

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		c.metrics.record(ctx, c.model, message.Usage.InputTokens, message.Usage.OutputTokens)
	}

	var text string
	for _, content := range message.Content {
		if content.Type == "text" {
			text = content.Text
		}
	}
	if text == "" {
		return "", errors.New("claude completion: no text content in response")
	}

	clog.FromContext(ctx).With("model", c.model).
		With("response_length", len(text)).
		Info("Claude completion finished")
	return text, nil
}

// isRetryableClaudeError reports whether err is a rate limit, overloaded,
// or transient server error from the Anthropic API.
func isRetryableClaudeError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 503, 504, 529:
			return true
		}
	}
	return false
}
