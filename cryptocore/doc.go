// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cryptocore implements the cryptographic heart of CryptoQR:
Ed25519 signatures and SHA-256 hashing for tamper-evident document
submissions.

# Key Management

A Core wraps the service key pair. Pass a PEM-encoded PKCS8 private key
to reuse a persistent identity, or an empty string for ephemeral keys:

	core, err := cryptocore.New(os.Getenv("CRYPTOQR_PRIVATE_KEY"))

Export keys with ExportPublicKey / ExportPrivateKey (PEM).

# Submissions

CreateSubmission hashes the file, builds a payload (content hash,
timestamp, competition, deadline, submission ID, nonce, optional email),
and signs its canonical serialization:

	sub, err := core.CreateSubmission(fileData, "alamedahacks-2026", deadline, email)

Canonical form is a JSON object with sorted keys and empty optional
fields dropped, so signing and verification agree byte-for-byte.

# Verification

VerifySubmission evaluates four checks, in order:

  - signature_valid: Ed25519 signature over the canonical payload
  - content_match: SHA-256 of the presented file equals the signed hash
  - before_deadline: signed timestamp at or before the signed deadline
  - timestamp_valid: signed timestamp not in the future (5 min skew)

The result is valid only when every check passes; otherwise Reason holds
a "; "-joined message per failed check. Malformed QR data produces an
invalid result with a "Verification error: ..." reason and no checks —
never a Go error, since garbage input is an expected outcome.
*/
package cryptocore
