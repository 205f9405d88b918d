/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sanitizerDetections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octoguard_sanitizer_detections_total",
		Help: "Sanitizer detections on untrusted input, by tag.",
	}, []string{"tag"})

	breakerTrips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octoguard_breaker_trips_total",
		Help: "Circuit breaker trips, by reason.",
	}, []string{"reason"})

	validatorFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octoguard_validator_fallbacks_total",
		Help: "Model outputs that degraded to the safe default, by kind.",
	}, []string{"kind"})
)
