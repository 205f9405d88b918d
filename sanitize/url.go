/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sanitize

import (
	"net/url"
	"strings"
)

// URL validates a link against a domain allow-list. It returns the URL
// unchanged with ok=true only when the scheme is exactly https and the
// hostname matches one of the allowed patterns. A pattern is either an
// exact hostname ("github.com") or a wildcard suffix ("*.github.com",
// which also matches the bare domain). Malformed URLs are rejected.
//
// Rejection returns ("", false); the caller decides what to do with a
// disallowed link. This function never rewrites URLs.
func URL(raw string, allowedDomains []string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme != "https" {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}

	for _, pattern := range allowedDomains {
		pattern = strings.ToLower(pattern)
		if domain, ok := strings.CutPrefix(pattern, "*."); ok {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return raw, true
			}
			continue
		}
		if host == pattern {
			return raw, true
		}
	}
	return "", false
}
