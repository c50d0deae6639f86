// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - QRData: payload, signature, version (decoded QR content)
  - CertificateRequest: submission_id, optional qr_data

# Response Types

Types for JSON responses:

  - SubmitResponse: submission_id, content_hash, QR image
  - VerifyResponse: valid, checks, reason, verified_at
  - PublicKeyResponse: PEM key and algorithm info
  - CompetitionStatsResponse / DashboardResponse: statistics
  - ErrorResponse: error, message
  - DuplicateResponse: prior submission details on conflict

# Domain Types

Internal data structures:

  - VerificationResult: immutable verification outcome
  - SubmissionRecord: stored submission metadata
  - CheckList: ordered named boolean checks

# Check Ordering

CheckList marshals to a plain JSON object but keeps insertion order on
both encode and decode. The verification report renders checks in the
order they were evaluated, which a map[string]bool would scramble.
*/
package models
