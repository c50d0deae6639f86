// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment.

CLI flags take precedence over environment variables. Required settings
fail fast with a descriptive error.

Required:

  - DATABASE_URL (-d): sqlite file/DSN or postgres connection string
  - IP_HASH_SALT (-ip-salt): secret for privacy-preserving IP hashing

Optional:

  - PORT (-p): server port (default 8000)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - BASE_URL (-base-url): public base URL used in verification links
  - CRYPTOQR_PRIVATE_KEY: PEM signing key; ephemeral keys when unset
  - SMTP_SERVER / SMTP_PORT / SENDER_EMAIL / SENDER_PASSWORD: email
    notifications; the mailer stays disabled without credentials
*/
package cliparse
