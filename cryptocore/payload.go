// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cryptocore

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SubmissionPayload is the signed portion of a submission. All fields are
// strings because the payload round-trips through QR JSON unchanged.
type SubmissionPayload struct {
	ContentHash   string `json:"content_hash"`
	Timestamp     string `json:"timestamp"`
	CompetitionID string `json:"competition_id"`
	Deadline      string `json:"deadline"`
	SubmissionID  string `json:"submission_id"`
	Nonce         string `json:"nonce"`
	Email         string `json:"email,omitempty"`
}

// canonical serializes the payload deterministically for signing: JSON
// object with sorted keys, empty optional fields dropped. Marshaling a
// map gives sorted keys for free.
func (p SubmissionPayload) canonical() ([]byte, error) {
	m := map[string]string{
		"content_hash":   p.ContentHash,
		"timestamp":      p.Timestamp,
		"competition_id": p.CompetitionID,
		"deadline":       p.Deadline,
		"submission_id":  p.SubmissionID,
		"nonce":          p.Nonce,
	}
	if p.Email != "" {
		m["email"] = p.Email
	}
	return json.Marshal(m)
}

// AsMap returns the payload as a generic map for QR encoding.
func (p SubmissionPayload) AsMap() map[string]any {
	m := map[string]any{
		"content_hash":   p.ContentHash,
		"timestamp":      p.Timestamp,
		"competition_id": p.CompetitionID,
		"deadline":       p.Deadline,
		"submission_id":  p.SubmissionID,
		"nonce":          p.Nonce,
	}
	if p.Email != "" {
		m["email"] = p.Email
	}
	return m
}

// payloadFromMap rebuilds a payload from decoded QR JSON. Unknown keys
// are rejected so a tampered payload can't smuggle extra signed fields.
func payloadFromMap(m map[string]any) (SubmissionPayload, error) {
	var p SubmissionPayload
	for key, raw := range m {
		val, ok := raw.(string)
		if !ok {
			return p, fmt.Errorf("payload field %q is not a string", key)
		}
		switch key {
		case "content_hash":
			p.ContentHash = val
		case "timestamp":
			p.Timestamp = val
		case "competition_id":
			p.CompetitionID = val
		case "deadline":
			p.Deadline = val
		case "submission_id":
			p.SubmissionID = val
		case "nonce":
			p.Nonce = val
		case "email":
			p.Email = val
		default:
			return p, fmt.Errorf("unexpected payload field %q", key)
		}
	}
	if p.ContentHash == "" || p.Timestamp == "" || p.SubmissionID == "" || p.Nonce == "" {
		return p, errors.New("payload missing required fields")
	}
	return p, nil
}
