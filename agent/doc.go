/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agent provides the model-provider plumbing behind the trust
boundary pipeline: a small Completer interface and implementations for
Claude and OpenAI.

The pipeline treats the model as an external collaborator: it hands over
an assembled prompt and gets raw text back. Everything interesting about
that text happens elsewhere (egress validation); this package only deals
with transport concerns — retries on rate limits and transient server
errors, and token-usage metrics.
*/
package agent
