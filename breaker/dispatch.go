/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package breaker

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DispatchPayloadDepthKey is the field name carrying dispatch depth in
// event payloads, inbound and outbound.
const DispatchPayloadDepthKey = "dispatch_depth"

// DispatchPayload is the loop-safety state threaded through an outbound
// cross-repository event. The receiving run re-hydrates its breaker
// context from DispatchDepth; IterationCount is advisory, for operators
// tracing a chain.
type DispatchPayload struct {
	DispatchDepth  int `json:"dispatch_depth"`
	IterationCount int `json:"iteration_count"`
}

// NewDispatchPayload builds the payload for delegating work onward:
// depth+1, with the current iteration count carried for observability.
func NewDispatchPayload(ctx Context) DispatchPayload {
	return DispatchPayload{
		DispatchDepth:  IncrementDispatchDepth(ctx).DispatchDepth,
		IterationCount: ctx.IterationCount,
	}
}

// ParseDispatchDepth extracts an advisory dispatch depth from a value
// found in an untrusted inbound event payload. It accepts a non-negative
// integer, float (floored), or numeric string; anything else is 0.
//
// The value is only ever compared against MaxDispatchDepth — it is never
// trusted as an upper bound by itself — so no upper clamp is applied here.
func ParseDispatchDepth(v any) int {
	switch n := v.(type) {
	case int:
		return max(n, 0)
	case int64:
		return max(int(n), 0)
	case float64:
		return depthFromFloat(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return max(int(i), 0)
		}
		if f, err := n.Float64(); err == nil {
			return depthFromFloat(f)
		}
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return max(int(i), 0)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return depthFromFloat(f)
		}
	}
	return 0
}

func depthFromFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Floor(f))
}
