// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pdfexport

import "time"

// Display labels for known check keys. Unknown keys render as-is:
// a new check added upstream must still show up in reports.
var checkLabels = map[string]string{
	"signature_valid": "Cryptographic Signature",
	"content_match":   "Content Integrity",
	"before_deadline": "Deadline Compliance",
	"timestamp_valid": "Timestamp Validity",
}

// CheckLabel resolves a check key to its display label, falling back to
// the raw key.
func CheckLabel(key string) string {
	if label, ok := checkLabels[key]; ok {
		return label
	}
	return key
}

// formatInstant renders a timestamp for humans. The zero value appears
// when a malformed payload carried no parseable timestamp.
func formatInstant(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format("Jan 2, 2006 15:04:05 UTC")
}

const hashPrefixLen = 16

// truncateHash shortens a hex digest for display on certificates.
func truncateHash(h string) string {
	if len(h) <= hashPrefixLen {
		return h
	}
	return h[:hashPrefixLen] + "…"
}
