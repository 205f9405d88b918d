/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package breaker bounds agent automation so that it can never run away.

Three hazards are guarded: unbounded iteration within a run, unbounded
automation-triggers-automation chains across repositories (dispatch depth),
and a model stuck emitting the same output (repetition). Each trip is a
hard stop surfaced as a tagged Error; breaker violations are never silently
corrected and never retried, in deliberate contrast to the rest of the
pipeline, which favors safe fallbacks.

Context is an immutable value threaded explicitly through pure transitions:
Check before every iteration, Update exactly once after. There is no
process-wide state, so parallel runs cannot corrupt each other's counters.
The only value that survives a process boundary is the dispatch depth,
carried inside the outbound event payload and re-hydrated with
ParseDispatchDepth at the start of the next run.

The package also holds the actor-level guards that depth alone cannot
provide: IsBot stops an agent from reacting to its own (or another
automation's) actions inside a single repository, and HasStopCommand gives
a human unconditional override over everything else.
*/
package breaker
