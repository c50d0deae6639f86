// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cryptoqr/cryptoqr/cliparse"
	"github.com/cryptoqr/cryptoqr/cryptocore"
	"github.com/cryptoqr/cryptoqr/db"
)

// SetupTestDB creates an in-memory SQLite database with the full schema.
// Closed automatically when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single connection keeps every statement on the same :memory: DB
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		BaseURL:      "http://localhost:8000",
		IPHashSalt:   "test-ip-salt",
		SMTPServer:   "smtp.example.com",
		SMTPPort:     587,
	}
}

// CreateTestSubmission inserts a submission row and returns its ID
func CreateTestSubmission(t *testing.T, conn *sql.DB, competitionID, contentHash string, submittedAt time.Time) string {
	t.Helper()

	id, err := cryptocore.GenerateSubmissionID()
	if err != nil {
		t.Fatalf("Failed to generate submission ID: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO submission (id, competition_id, content_hash, submitted_at, email, created_at)
		VALUES ($1, $2, $3, $4, NULL, $5)
	`, id, competitionID, contentHash, submittedAt, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test submission: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request with an optional JSON body
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeMultipartRequest creates an HTTP test request carrying a file upload
// plus form fields, as the submit and verify endpoints expect.
func MakeMultipartRequest(t *testing.T, method, path string, fields map[string]string, fileField, fileName string, fileData []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("Failed to create file part: %v", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(fileData)); err != nil {
			t.Fatalf("Failed to write file part: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to finalize multipart body: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
