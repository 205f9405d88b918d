/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate_test

import (
	"strings"
	"testing"

	"github.com/octoguard/octoguard/validate"
)

func TestSanitizeFilePath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean relative", "internal/db/query.go", "internal/db/query.go"},
		{"traversal", "../../../etc/passwd", "etc/passwd"},
		{"absolute", "/etc/shadow", "etc/shadow"},
		{"drive letter forward slashes", "C:/Windows/System32/config", "Windows/System32/config"},
		{"drive letter backslashes", "C:\\Windows\\System32\\config", "Windows/System32/config"},
		{"bare drive letter", "D:", "unknown"},
		{"unc path", "\\\\fileserver\\share\\secret.txt", "share/secret.txt"},
		{"doubled separators", "a//b////c", "a/b/c"},
		{"interior traversal", "src/../../secret", "src/secret"},
		{"empty", "", "unknown"},
		{"only traversal", "../..", "unknown"},
		{"mixed separators", "a\\b/c", "a/b/c"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := validate.SanitizeFilePath(tc.in); got != tc.want {
				t.Errorf("SanitizeFilePath(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeFilePathLengthCap(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("d/", 300) + "file.go"
	got := validate.SanitizeFilePath(long)
	if len([]rune(got)) > 256 {
		t.Errorf("path length %d exceeds cap", len([]rune(got)))
	}
}

func TestSanitizeFilePathInvariants(t *testing.T) {
	t.Parallel()
	hostile := []string{
		"../../../../proc/self/environ",
		"..\\..\\windows\\win.ini",
		"//attacker.example/share",
		"Z:\\\\payload",
		"....//....//etc",
	}
	for _, in := range hostile {
		got := validate.SanitizeFilePath(in)
		if strings.Contains(got, "..") {
			t.Errorf("SanitizeFilePath(%q) = %q retains traversal", in, got)
		}
		if strings.HasPrefix(got, "/") {
			t.Errorf("SanitizeFilePath(%q) = %q is absolute", in, got)
		}
		if got == "" {
			t.Errorf("SanitizeFilePath(%q) produced empty string", in)
		}
	}
}
