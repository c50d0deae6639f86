// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cryptocore

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// GenerateSubmissionID creates a random 128-bit submission identifier.
// URL-safe base64 without padding for clean IDs in URLs and filenames.
func GenerateSubmissionID() (string, error) {
	return randomToken("submission ID")
}

func generateNonce() (string, error) {
	return randomToken("nonce")
}

func randomToken(what string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", what, err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
