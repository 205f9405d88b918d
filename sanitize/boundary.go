/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sanitize

import (
	"fmt"
	"strings"
)

// WrapWithTrustBoundary surrounds content with explicit BEGIN/END UNTRUSTED
// markers so that a model cannot implicitly treat the enclosed text as part
// of its instructions. The label names the field and is upper-cased in the
// markers.
//
// This is pure formatting; callers are expected to pass content that has
// already been through Sanitize.
func WrapWithTrustBoundary(content, label string) string {
	marker := strings.ToUpper(label)
	return fmt.Sprintf("---BEGIN UNTRUSTED %s---\n%s\n---END UNTRUSTED %s---", marker, content, marker)
}
