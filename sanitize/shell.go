/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sanitize

import "strings"

// shellMetacharacters have no legitimate meaning in the free-text fields of
// a validated result, so they are deleted outright rather than escaped.
const shellMetacharacters = "`${}|;&<>\\"

// StripShellMetacharacters deletes shell metacharacters from text. It is
// applied only to fields destined for validated output (summaries,
// reasoning, issue descriptions), never to the text shown to the model.
func StripShellMetacharacters(text string) string {
	if !strings.ContainsAny(text, shellMetacharacters) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(shellMetacharacters, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
