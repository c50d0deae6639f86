// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Submissions
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    competition_id TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL,
    email TEXT,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (competition_id, content_hash)
);

CREATE INDEX IF NOT EXISTS idx_submission_competition ON submission(competition_id);
CREATE INDEX IF NOT EXISTS idx_submission_hash ON submission(competition_id, content_hash);

-- Verification log
CREATE TABLE IF NOT EXISTS verification_log (
    id TEXT PRIMARY KEY,
    submission_id TEXT NOT NULL,
    valid BOOLEAN NOT NULL,
    client_ip_hash TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_verification_log_submission ON verification_log(submission_id);
`
