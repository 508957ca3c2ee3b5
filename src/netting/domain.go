// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package netting

import "strings"

const maxDomainLength = 253

// IsValidDomain reports whether domain is a syntactically valid domain name.
//
// A valid domain has at least two labels separated by dots and may end
// with a single root dot. Each label is 1-63 ASCII letters, digits,
// hyphens or underscores and must not start or end with a hyphen. The
// TLD must be letters only, or a Punycode label ("xn--...").
// Unicode names must be converted to Punycode by the caller.
//
// The [Checker] operations do not call this; it is meant for input
// validation at the application boundary.
func IsValidDomain(domain string) bool {
	domain = strings.TrimSuffix(domain, ".")
	if domain == "" || len(domain) > maxDomainLength {
		return false
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}

	for i, label := range labels {
		if i == len(labels)-1 {
			return isValidTLD(label)
		}
		if !isValidLabel(label) {
			return false
		}
	}

	return true
}

func isValidLabel(label string) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}

	// Labels must not start or end with a hyphen.
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}

	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_':
		default:
			return false
		}
	}

	return true
}

// isValidTLD accepts letters-only labels of at least two characters, or
// Punycode labels with content after the "xn--" prefix.
func isValidTLD(label string) bool {
	if len(label) < 2 || len(label) > 63 {
		return false
	}

	if len(label) > 4 && strings.EqualFold(label[:4], "xn--") {
		for i := 4; i < len(label); i++ {
			c := label[i]
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			default:
				return false
			}
		}
		return label[len(label)-1] != '-'
	}

	for i := 0; i < len(label); i++ {
		c := label[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}

	return true
}

// NormalizeDomain lowercases and trims whitespace from a domain name.
// It does not convert Unicode to Punycode.
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
