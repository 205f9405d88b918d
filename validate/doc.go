/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package validate parses and clamps model output before it drives any
action.

Model output is untrusted: it may be malformed, it may name labels that do
not exist, and it may have been steered by injected instructions in the
content it was shown. Everything that crosses from raw model text into a
structured result goes through one of two validators (ValidateTriageOutput,
ValidateReviewOutput), which enforce closed enum vocabularies, filter label
sets against a fixed allow-list, scrub file paths, and cap free-text
fields.

Validation never panics and never fails a run: a result that cannot be
parsed degrades to a fixed safe default that forces human review. The
system favors "flag for a human" over stalling automation.
*/
package validate
