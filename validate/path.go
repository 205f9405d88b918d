/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"regexp"
	"strings"
)

// maxFilePathLength caps file paths rendered into comments.
const maxFilePathLength = 256

var (
	driveLetterPrefix = regexp.MustCompile(`^[A-Za-z]:[\\/]?`)
	uncHostPrefix     = regexp.MustCompile(`^[\\/]{2}[^\\/]+`)
)

// SanitizeFilePath forces a model-supplied path into a safe relative form.
// Paths are later rendered as inline file references in posted comments, so
// a traversal, absolute, or drive-qualified path must never survive.
//
// The result never starts with a separator, never contains "..", and is
// never empty (the literal "unknown" substitutes for anything that scrubs
// away entirely).
func SanitizeFilePath(raw string) string {
	p := driveLetterPrefix.ReplaceAllString(raw, "")
	p = uncHostPrefix.ReplaceAllString(p, "")
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.ReplaceAll(p, "..", "")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	p = strings.TrimLeft(p, "/")
	if runes := []rune(p); len(runes) > maxFilePathLength {
		p = string(runes[:maxFilePathLength])
	}
	if p == "" {
		return "unknown"
	}
	return p
}
