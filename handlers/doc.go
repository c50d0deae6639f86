// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the CryptoQR API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SubmitHandler: File submission, signing, and QR generation
  - VerifyHandler: QR verification and PDF report export
  - CertificateHandler: Certificate PDF for stored submissions
  - InfoHandler: Service info, public key, stats, dashboard

Handlers are created via constructor functions that accept *sql.DB, Config,
and the collaborators they need:

	submitHandler := handlers.NewSubmitHandler(db, cfg, core, mail)

# Submission Flow

	POST /api/submit → Submit (multipart: file, competition_id, deadline, email?)

The file is hashed, the payload signed with the service Ed25519 key, the
submission stored, and the QR code returned as base64 PNG. Submitting the
same file to the same competition twice returns 409 with the original
submission details. Uploads above 50MB are rejected with 413.

# Verification Flow

	POST /api/verify        → Verify (multipart: file, qr_data)
	POST /api/verify/export → Export (same input, responds with the PDF report)

Verification is rate limited per client IP (20 attempts per 5 minutes).
Every verification outcome is appended to verification_log with a hashed
client IP.

# Document Export

Export and Certificate hand the verified data to the pdfexport engine and
stream the finished PDF back with a deterministic attachment filename.
Rendering-backend unavailability maps to 503; everything the engine
rejects as invalid input maps to 400.
*/
package handlers
