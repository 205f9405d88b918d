/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
)

// OpenAI is a Completer backed by the OpenAI chat completions API.
type OpenAI struct {
	client      openai.Client
	model       string
	retryConfig RetryConfig
	metrics     *genAIMetrics
}

// OpenAIOption configures an OpenAI completer.
type OpenAIOption func(*OpenAI)

// WithOpenAIModel overrides the default model.
func WithOpenAIModel(model string) OpenAIOption {
	return func(o *OpenAI) { o.model = model }
}

// WithOpenAIRetryConfig overrides the default retry policy.
func WithOpenAIRetryConfig(cfg RetryConfig) OpenAIOption {
	return func(o *OpenAI) { o.retryConfig = cfg }
}

// NewOpenAI creates an OpenAI completer from an existing client.
func NewOpenAI(client openai.Client, opts ...OpenAIOption) *OpenAI {
	o := &OpenAI{
		client:      client,
		model:       openai.ChatModelGPT4o,
		retryConfig: DefaultRetryConfig(),
		metrics:     newGenAIMetrics("octoguard.agent"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Complete implements Completer.
func (o *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(o.model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(maxTokens),
	}

	completion, err := RetryWithBackoff(ctx, o.retryConfig, "openai_complete", isRetryableOpenAIError, func() (*openai.ChatCompletion, error) {
		return o.client.Chat.Completions.New(ctx, params)
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if completion.Usage.PromptTokens > 0 || completion.Usage.CompletionTokens > 0 {
		o.metrics.record(ctx, o.model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errors.New("openai completion: no text content in response")
	}
	text := completion.Choices[0].Message.Content

	clog.FromContext(ctx).With("model", o.model).
		With("response_length", len(text)).
		Info("OpenAI completion finished")
	return text, nil
}

// isRetryableOpenAIError reports whether err is a rate limit or transient
// server error from the OpenAI API.
func isRetryableOpenAIError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		}
	}
	return false
}
