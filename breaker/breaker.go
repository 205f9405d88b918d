/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package breaker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Thresholds. All three trips are unconditional hard stops.
const (
	// MaxIterations bounds agent loop iterations within a single run.
	MaxIterations = 5

	// MaxDispatchDepth bounds chained cross-repository automation triggers.
	MaxDispatchDepth = 3

	// MaxHashHistory bounds the repetition-detection window.
	MaxHashHistory = 10
)

// Context is the circuit breaker state for one run. It is an immutable
// value: transitions return a new Context and never mutate in place.
// Construct one per run with NewContext; never share one across runs.
type Context struct {
	// DispatchDepth counts chained cross-repository triggers leading to
	// this run. Seeded from the inbound event payload.
	DispatchDepth int

	// IterationCount counts completed loop iterations in this run.
	IterationCount int

	// RecentOutputHashes is a FIFO window of output digests, newest last,
	// holding at most MaxHashHistory entries.
	RecentOutputHashes []string

	// LastOutput is the most recent model output, hashed by Check to
	// detect repetition.
	LastOutput string
}

// NewContext creates a fresh breaker context. dispatchDepth comes from
// ParseDispatchDepth over the inbound event payload; pass 0 for runs that
// were not triggered by another automation.
func NewContext(dispatchDepth int) Context {
	if dispatchDepth < 0 {
		dispatchDepth = 0
	}
	return Context{DispatchDepth: dispatchDepth}
}

// Check reports whether the run may proceed with another iteration. It
// must be called before commencing every iteration. It inspects state only
// and never mutates it.
//
// Depth is checked first: it is the one counter that accumulates across
// process boundaries, so it is the cross-process hazard worth reporting
// when several limits are hit at once.
func Check(ctx Context) error {
	if ctx.DispatchDepth >= MaxDispatchDepth {
		return &Error{
			Reason: ReasonMaxDepth,
			Detail: fmt.Sprintf("dispatch depth %d reached limit %d", ctx.DispatchDepth, MaxDispatchDepth),
		}
	}
	if ctx.IterationCount >= MaxIterations {
		return &Error{
			Reason: ReasonMaxIterations,
			Detail: fmt.Sprintf("iteration count %d reached limit %d", ctx.IterationCount, MaxIterations),
		}
	}
	if ctx.LastOutput != "" {
		// Update appends the digest of what becomes LastOutput, so one
		// occurrence is the output itself; two means a repeat.
		digest := hashOutput(ctx.LastOutput)
		seen := 0
		for _, h := range ctx.RecentOutputHashes {
			if h == digest {
				seen++
			}
		}
		if seen >= 2 {
			return &Error{
				Reason: ReasonRepetitiveOutput,
				Detail: fmt.Sprintf("output digest %s repeated within the last %d iterations", digest[:12], MaxHashHistory),
			}
		}
	}
	return nil
}

// Update records a completed iteration: the digest of output joins the
// hash window (evicting the oldest entry past MaxHashHistory), the
// iteration count advances, and output becomes LastOutput. Call it exactly
// once per completed iteration, after the iteration's side effects and
// before the next Check.
func Update(ctx Context, output string) Context {
	hashes := make([]string, 0, len(ctx.RecentOutputHashes)+1)
	hashes = append(hashes, ctx.RecentOutputHashes...)
	hashes = append(hashes, hashOutput(output))
	if len(hashes) > MaxHashHistory {
		hashes = hashes[len(hashes)-MaxHashHistory:]
	}
	return Context{
		DispatchDepth:      ctx.DispatchDepth,
		IterationCount:     ctx.IterationCount + 1,
		RecentOutputHashes: hashes,
		LastOutput:         output,
	}
}

// IncrementDispatchDepth returns a context one dispatch level deeper. Use
// it immediately before delegating work to another repository via an
// outbound event.
func IncrementDispatchDepth(ctx Context) Context {
	out := ctx
	out.DispatchDepth++
	return out
}

func hashOutput(output string) string {
	sum := sha256.Sum256([]byte(output))
	return hex.EncodeToString(sum[:])
}
