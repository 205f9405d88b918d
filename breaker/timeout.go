/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package breaker

import (
	"context"
	"fmt"
	"time"
)

// WithTimeout races fn against a timer. If the timer wins, it returns a
// fatal timeout Error naming the operation, and fn's context is cancelled.
//
// A timeout abandons waiting on the result; it does not guarantee the
// underlying side-effecting operation was itself cancelled. Callers must
// treat a timeout as "outcome unknown", not "rolled back", and must not
// blindly reissue a side-effecting call without an idempotency check from
// the external collaborator.
func WithTimeout[T any](ctx context.Context, timeout time.Duration, name string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		val T
		err error
	}
	// Buffered so the goroutine can finish after a timeout without leaking.
	done := make(chan outcome, 1)
	go func() {
		val, err := fn(opCtx)
		done <- outcome{val: val, err: err}
	}()

	select {
	case out := <-done:
		return out.val, out.err
	case <-opCtx.Done():
		if ctx.Err() != nil {
			// Caller cancellation, not our timer.
			return zero, ctx.Err()
		}
		return zero, &Error{
			Reason: ReasonTimeout,
			Detail: fmt.Sprintf("%s did not complete within %s", name, timeout),
		}
	}
}
