/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package sanitize normalizes and inspects untrusted text before it reaches a
model prompt.

GitHub issue and pull request fields are authored by arbitrary external
actors and may carry embedded instructions intended for the model rather
than for a human reader. Sanitize applies a fixed pipeline of stages to
each field: invisible and formatting Unicode code points are removed, HTML
and markdown comment blocks are replaced with a visible placeholder, a
detection-only scan records injection-intent patterns, and overlong input
is truncated. Detection never mutates the text; mutation never depends on
detection.

The package also provides the trust-boundary primitive used during prompt
assembly (WrapWithTrustBoundary), a strict https/allow-list URL filter
(URL), and a shell-metacharacter stripper used on fields destined for
validated output.

Everything in this package is pure and synchronous: no model calls, no
network, no shared state.
*/
package sanitize
