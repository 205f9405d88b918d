/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package breaker_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/octoguard/octoguard/breaker"
)

func TestWithTimeoutCompletes(t *testing.T) {
	t.Parallel()
	got, err := breaker.WithTimeout(context.Background(), time.Second, "fast_op", func(context.Context) (string, error) {
		return "done", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "done" {
		t.Errorf("got %q, want %q", got, "done")
	}
}

func TestWithTimeoutPropagatesError(t *testing.T) {
	t.Parallel()
	opErr := errors.New("provider unavailable")
	_, err := breaker.WithTimeout(context.Background(), time.Second, "failing_op", func(context.Context) (string, error) {
		return "", opErr
	})
	if !errors.Is(err, opErr) {
		t.Errorf("got %v, want the operation error", err)
	}
	if _, ok := breaker.TripReason(err); ok {
		t.Error("an operation error is not a breaker trip")
	}
}

func TestWithTimeoutTrips(t *testing.T) {
	t.Parallel()
	started := time.Now()
	_, err := breaker.WithTimeout(context.Background(), 20*time.Millisecond, "slow_op", func(ctx context.Context) (string, error) {
		select {
		case <-time.After(5 * time.Second):
			return "too late", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
	if time.Since(started) > time.Second {
		t.Fatal("timeout did not fire promptly")
	}
	reason, ok := breaker.TripReason(err)
	if !ok || reason != breaker.ReasonTimeout {
		t.Fatalf("got %v, want a timeout trip", err)
	}
	if !strings.Contains(err.Error(), "slow_op") {
		t.Errorf("timeout error must name the operation, got %q", err.Error())
	}
}

func TestWithTimeoutCallerCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := breaker.WithTimeout(ctx, time.Minute, "cancelled_op", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	if _, ok := breaker.TripReason(err); ok {
		t.Errorf("caller cancellation is not a timeout trip, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
