/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package breaker

import (
	"errors"
	"fmt"
)

// Reason tags a circuit breaker trip.
type Reason string

const (
	ReasonMaxIterations    Reason = "max-iterations"
	ReasonMaxDepth         Reason = "max-depth"
	ReasonRepetitiveOutput Reason = "repetitive-output"
	ReasonTimeout          Reason = "timeout"
)

// Error is a circuit breaker trip. Every Error is fatal to the run: it is
// surfaced to the top-level failure reporter and never retried.
type Error struct {
	Reason Reason
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("circuit breaker: %s: %s", e.Reason, e.Detail)
}

// TripReason extracts the breaker reason from err, unwrapping as needed.
// ok is false when err is not a breaker trip.
func TripReason(err error) (Reason, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Reason, true
	}
	return "", false
}
