/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agent

import (
	"context"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// genAIMetrics records token usage per completion, with the model name as
// a dimension so one meter serves every provider.
type genAIMetrics struct {
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
}

// newGenAIMetrics creates the token counters. Metric creation failures
// degrade to no-op counters rather than failing the completer.
func newGenAIMetrics(meterName string) *genAIMetrics {
	meter := otel.Meter(meterName)

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		clog.Warnf("Failed to create prompt token counter, metrics disabled: %v", err)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		clog.Warnf("Failed to create completion token counter, metrics disabled: %v", err)
		completionTokens = noop.Int64Counter{}
	}

	return &genAIMetrics{
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
	}
}

func (m *genAIMetrics) record(ctx context.Context, model string, prompt, completion int64) {
	attrs := metric.WithAttributes(attribute.String("model", model))
	if prompt > 0 {
		m.promptTokens.Add(ctx, prompt, attrs)
	}
	if completion > 0 {
		m.completionTokens.Add(ctx, completion, attrs)
	}
}
