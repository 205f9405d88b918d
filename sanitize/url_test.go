/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sanitize_test

import (
	"strings"
	"testing"

	"github.com/octoguard/octoguard/sanitize"
)

func TestURL(t *testing.T) {
	t.Parallel()
	allowed := []string{"*.github.com", "pkg.go.dev"}

	tests := []struct {
		name   string
		raw    string
		wantOK bool
	}{
		{"wildcard subdomain", "https://docs.github.com/page", true},
		{"wildcard bare domain", "https://github.com/octocat", true},
		{"exact host", "https://pkg.go.dev/net/url", true},
		{"http rejected regardless of domain", "http://docs.github.com/page", false},
		{"unknown host", "https://evil.example.com/", false},
		{"suffix spoof", "https://notgithub.com/", false},
		{"embedded allowed domain", "https://github.com.evil.example/", false},
		{"no scheme", "docs.github.com/page", false},
		{"malformed", "https://%zz", false},
		{"empty", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := sanitize.URL(tc.raw, allowed)
			if ok != tc.wantOK {
				t.Fatalf("URL(%q) ok = %v, want %v", tc.raw, ok, tc.wantOK)
			}
			if ok && got != tc.raw {
				t.Errorf("accepted URL must be unchanged, got %q", got)
			}
			if !ok && got != "" {
				t.Errorf("rejected URL must yield empty string, got %q", got)
			}
		})
	}
}

func TestWrapWithTrustBoundary(t *testing.T) {
	t.Parallel()
	wrapped := sanitize.WrapWithTrustBoundary("some user text", "issue body")
	if !strings.HasPrefix(wrapped, "---BEGIN UNTRUSTED ISSUE BODY---\n") {
		t.Errorf("missing begin marker: %q", wrapped)
	}
	if !strings.HasSuffix(wrapped, "\n---END UNTRUSTED ISSUE BODY---") {
		t.Errorf("missing end marker: %q", wrapped)
	}
	if !strings.Contains(wrapped, "some user text") {
		t.Errorf("content missing: %q", wrapped)
	}
}
