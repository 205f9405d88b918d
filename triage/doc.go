/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package triage wires the trust boundary pipeline to GitHub.

A Triager fetches an issue or pull request, runs every externally authored
field through ingress sanitization, assembles a prompt in which untrusted
content sits inside explicit trust boundaries, calls the model under a
circuit-breaker-gated loop, validates the output on egress, and only then
acts: labels and comments come exclusively from validated results.

The breaker context is created fresh per run, seeded with the dispatch
depth found in the inbound event, and carried forward in the outbound
repository_dispatch payload when a run delegates work to another
repository.
*/
package triage
