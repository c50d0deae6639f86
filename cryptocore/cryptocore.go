// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cryptocore

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cryptoqr/cryptoqr/models"
)

// Allowance for client clocks slightly ahead of the server
const clockSkew = 5 * time.Minute

// Check names, in evaluation order. The order is part of the contract:
// verification responses and exported reports render checks in this order.
const (
	CheckSignatureValid = "signature_valid"
	CheckContentMatch   = "content_match"
	CheckBeforeDeadline = "before_deadline"
	CheckTimestampValid = "timestamp_valid"
)

var failureMessages = map[string]string{
	CheckSignatureValid: "Invalid cryptographic signature",
	CheckContentMatch:   "File content does not match QR code",
	CheckBeforeDeadline: "Submission was after deadline",
	CheckTimestampValid: "Invalid or suspicious timestamp",
}

var ErrInvalidPrivateKey = errors.New("invalid private key PEM")

// Core holds the service signing key pair.
type Core struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// Submission is a freshly signed submission ready for QR encoding.
type Submission struct {
	SubmissionID string
	Timestamp    time.Time
	ContentHash  string
	Payload      SubmissionPayload
	Signature    string // base64
	Version      string
}

// New creates a Core from a PEM-encoded Ed25519 private key, or generates
// an ephemeral key pair when pem is empty.
func New(privateKeyPEM string) (*Core, error) {
	if privateKeyPEM == "" {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to generate key pair: %w", err)
		}
		return &Core{priv: priv, pub: pub}, nil
	}

	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil {
		return nil, ErrInvalidPrivateKey
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	priv, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not Ed25519")
	}
	return &Core{priv: priv, pub: priv.Public().(ed25519.PublicKey)}, nil
}

// ExportPublicKey returns the public key in PEM (PKIX) format.
func (c *Core) ExportPublicKey() (string, error) {
	der, err := x509.MarshalPKIXPublicKey(c.pub)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}

// ExportPrivateKey returns the private key in PEM (PKCS8) format.
// Handle with care.
func (c *Core) ExportPrivateKey() (string, error) {
	der, err := x509.MarshalPKCS8PrivateKey(c.priv)
	if err != nil {
		return "", fmt.Errorf("failed to marshal private key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})), nil
}

// HashFile computes the hex-encoded SHA-256 digest of file content.
func HashFile(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CreateSubmission hashes the file, builds a signed payload, and returns
// the submission ready for storage and QR encoding.
func (c *Core) CreateSubmission(fileData []byte, competitionID, deadline string, email string) (Submission, error) {
	submissionID, err := GenerateSubmissionID()
	if err != nil {
		return Submission{}, err
	}
	nonce, err := generateNonce()
	if err != nil {
		return Submission{}, err
	}

	now := time.Now().UTC()
	payload := SubmissionPayload{
		ContentHash:   HashFile(fileData),
		Timestamp:     now.Format(time.RFC3339),
		CompetitionID: competitionID,
		Deadline:      deadline,
		SubmissionID:  submissionID,
		Nonce:         nonce,
		Email:         email,
	}

	serialized, err := payload.canonical()
	if err != nil {
		return Submission{}, fmt.Errorf("failed to serialize payload: %w", err)
	}
	sig := ed25519.Sign(c.priv, serialized)

	return Submission{
		SubmissionID: submissionID,
		Timestamp:    now,
		ContentHash:  payload.ContentHash,
		Payload:      payload,
		Signature:    base64.StdEncoding.EncodeToString(sig),
		Version:      models.PayloadVersion,
	}, nil
}

// VerifySubmission checks QR data against the actual file. A malformed
// payload yields an invalid result with a descriptive reason rather than
// an error: verification of garbage input is a normal outcome here.
func (c *Core) VerifySubmission(qr models.QRData, fileData []byte, publicKeyPEM string) models.VerificationResult {
	verifiedAt := time.Now().UTC()

	payload, err := payloadFromMap(qr.Payload)
	if err != nil {
		return invalidResult(verifiedAt, fmt.Sprintf("Verification error: %v", err))
	}
	sig, err := base64.StdEncoding.DecodeString(qr.Signature)
	if err != nil {
		return invalidResult(verifiedAt, fmt.Sprintf("Verification error: bad signature encoding: %v", err))
	}
	pub, err := c.resolvePublicKey(publicKeyPEM)
	if err != nil {
		return invalidResult(verifiedAt, fmt.Sprintf("Verification error: %v", err))
	}

	checks := models.CheckList{
		{Name: CheckSignatureValid, Passed: verifySignature(payload, sig, pub)},
		{Name: CheckContentMatch, Passed: HashFile(fileData) == payload.ContentHash},
		{Name: CheckBeforeDeadline, Passed: verifyDeadline(payload)},
		{Name: CheckTimestampValid, Passed: verifyTimestamp(payload, verifiedAt)},
	}

	result := models.VerificationResult{
		Valid:         checks.AllPassed(),
		SubmissionID:  payload.SubmissionID,
		CompetitionID: payload.CompetitionID,
		Checks:        checks,
		VerifiedAt:    verifiedAt,
	}
	if ts, err := parseInstant(payload.Timestamp); err == nil {
		result.Timestamp = ts
	}
	if !result.Valid {
		result.Reason = FailureReason(checks)
	}
	return result
}

func invalidResult(verifiedAt time.Time, reason string) models.VerificationResult {
	return models.VerificationResult{
		Valid:         false,
		SubmissionID:  "unknown",
		CompetitionID: "unknown",
		Checks:        models.CheckList{},
		Reason:        reason,
		VerifiedAt:    verifiedAt,
	}
}

func (c *Core) resolvePublicKey(pemStr string) (ed25519.PublicKey, error) {
	if pemStr == "" {
		return c.pub, nil
	}
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, errors.New("invalid public key PEM")
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	pub, ok := key.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("public key is not Ed25519")
	}
	return pub, nil
}

func verifySignature(payload SubmissionPayload, sig []byte, pub ed25519.PublicKey) bool {
	serialized, err := payload.canonical()
	if err != nil {
		return false
	}
	return ed25519.Verify(pub, serialized, sig)
}

func verifyDeadline(payload SubmissionPayload) bool {
	submitted, err := parseInstant(payload.Timestamp)
	if err != nil {
		return false
	}
	deadline, err := parseInstant(payload.Deadline)
	if err != nil {
		return false
	}
	return !submitted.After(deadline)
}

func verifyTimestamp(payload SubmissionPayload, now time.Time) bool {
	ts, err := parseInstant(payload.Timestamp)
	if err != nil {
		return false
	}
	// Not in the future, modulo clock skew
	return !ts.After(now.Add(clockSkew))
}

func parseInstant(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FailureReason joins the human-readable messages for failed checks.
func FailureReason(checks models.CheckList) string {
	var msgs []string
	for _, name := range checks.Failed() {
		if msg, ok := failureMessages[name]; ok {
			msgs = append(msgs, msg)
		} else {
			msgs = append(msgs, name)
		}
	}
	return strings.Join(msgs, "; ")
}
