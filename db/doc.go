// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - submission: One row per signed submission; UNIQUE(competition_id,
    content_hash) backs duplicate detection
  - verification_log: One row per verification attempt, with a hashed
    client IP for privacy

The SQL sticks to the portable subset accepted by both backends
(modernc.org/sqlite and lib/pq), with $N placeholders throughout.
*/
package db
