// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the CryptoQR API server.

CryptoQR issues cryptographically signed QR codes for competition file
submissions and verifies them later: the file is hashed, the payload is
signed with the service Ed25519 key, and verification replays the checks
and can export the outcome as a PDF report or certificate.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=cryptoqr.db IP_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 8000 -d cryptoqr.db -ip-salt "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - IP_HASH_SALT (-ip-salt): Secret for hashing client IPs in logs

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - BASE_URL (-base-url): Public base URL used in verification links
  - CRYPTOQR_PRIVATE_KEY: PEM Ed25519 signing key; an ephemeral pair is
    generated (and logged) when unset
  - SMTP_SERVER, SMTP_PORT, SENDER_EMAIL, SENDER_PASSWORD: confirmation
    email; the mailer stays disabled without credentials

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (submit, verify, export, stats)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, rate limiting
  - models: Request/response types
  - cryptocore: Ed25519 signing, hashing, verification checks
  - qrgen: QR code rendering
  - pdfexport: PDF report and certificate composition
  - mailer: SMTP confirmation email
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
