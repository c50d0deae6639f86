// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Payload format version embedded in QR codes
const PayloadVersion = "1.0.0"

// GeneratorName identifies the service in exported documents and API responses
const GeneratorName = "CryptoQR v1.0.0"

// Request types

// QRData is the decoded content of a cryptographic QR code.
type QRData struct {
	Payload   map[string]any `json:"payload"`
	Signature string         `json:"signature"`
	Version   string         `json:"version"`
}

type CertificateRequest struct {
	SubmissionID string `json:"submission_id"`
	QRData       string `json:"qr_data,omitempty"`
}

// Response types

type SubmitResponse struct {
	Success         bool      `json:"success"`
	SubmissionID    string    `json:"submission_id"`
	Timestamp       time.Time `json:"timestamp"`
	ContentHash     string    `json:"content_hash"`
	QRData          QRData    `json:"qr_data"`
	QRImageBase64   string    `json:"qr_image_base64"`
	VerificationURL string    `json:"verification_url"`
}

type VerifyResponse struct {
	Valid         bool      `json:"valid"`
	SubmissionID  string    `json:"submission_id"`
	Timestamp     string    `json:"timestamp"`
	CompetitionID string    `json:"competition_id"`
	Checks        CheckList `json:"checks"`
	Reason        string    `json:"reason,omitempty"`
	VerifiedAt    time.Time `json:"verified_at"`
}

type PublicKeyResponse struct {
	PublicKey string `json:"public_key"`
	Algorithm string `json:"algorithm"`
	KeySize   int    `json:"key_size"`
}

type CompetitionStatsResponse struct {
	CompetitionID    string     `json:"competition_id"`
	TotalSubmissions int        `json:"total_submissions"`
	FirstSubmission  *time.Time `json:"first_submission,omitempty"`
	LastSubmission   *time.Time `json:"last_submission,omitempty"`
	Message          string     `json:"message,omitempty"`
}

type CompetitionSummary struct {
	CompetitionID string `json:"competition_id"`
	Submissions   int    `json:"submissions"`
}

type DashboardResponse struct {
	TotalSubmissions  int                  `json:"total_submissions"`
	TotalCompetitions int                  `json:"total_competitions"`
	Competitions      []CompetitionSummary `json:"competitions"`
	APIVersion        string               `json:"api_version"`
}

// Domain types

// VerificationResult is the outcome of checking a submission against its
// QR code. Immutable once built; the PDF export engine consumes it as-is.
type VerificationResult struct {
	Valid         bool
	SubmissionID  string
	Timestamp     time.Time
	CompetitionID string
	Checks        CheckList
	Reason        string
	VerifiedAt    time.Time
}

// SubmissionRecord is a stored submission, used for certificates and
// duplicate detection.
type SubmissionRecord struct {
	SubmissionID  string
	CompetitionID string
	ContentHash   string
	Timestamp     time.Time
	Email         *string
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DuplicateResponse carries the details of a prior submission when the
// same file is submitted twice to one competition.
type DuplicateResponse struct {
	Error                string    `json:"error"`
	Message              string    `json:"message"`
	ExistingSubmissionID string    `json:"existing_submission_id"`
	ExistingTimestamp    time.Time `json:"existing_timestamp"`
}
