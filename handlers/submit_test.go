// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cryptoqr/cryptoqr/cryptocore"
	"github.com/cryptoqr/cryptoqr/mailer"
	"github.com/cryptoqr/cryptoqr/models"
	"github.com/cryptoqr/cryptoqr/testutil"
)

func newSubmitHandler(t *testing.T) (*SubmitHandler, *cryptocore.Core) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	core, err := cryptocore.New("")
	if err != nil {
		t.Fatalf("Failed to create core: %v", err)
	}
	return NewSubmitHandler(conn, cfg, core, mailer.New(cfg)), core
}

func TestSubmit(t *testing.T) {
	handler, _ := newSubmitHandler(t)

	fileData := []byte("solution source code")

	tests := []struct {
		name           string
		fields         map[string]string
		fileField      string
		fileData       []byte
		expectedStatus int
	}{
		{
			name: "valid submission",
			fields: map[string]string{
				"competition_id": "alamedahacks-2026",
				"deadline":       "2030-01-01T00:00:00Z",
			},
			fileField:      "file",
			fileData:       fileData,
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing file",
			fields: map[string]string{
				"competition_id": "alamedahacks-2026",
				"deadline":       "2030-01-01T00:00:00Z",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty file",
			fields: map[string]string{
				"competition_id": "alamedahacks-2026",
				"deadline":       "2030-01-01T00:00:00Z",
			},
			fileField:      "file",
			fileData:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing competition_id",
			fields: map[string]string{
				"deadline": "2030-01-01T00:00:00Z",
			},
			fileField:      "file",
			fileData:       []byte("another file"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing deadline",
			fields: map[string]string{
				"competition_id": "alamedahacks-2026",
			},
			fileField:      "file",
			fileData:       []byte("yet another file"),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeMultipartRequest(t, "POST", "/api/submit", tt.fields, tt.fileField, "solution.zip", tt.fileData)
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestSubmitResponseFields(t *testing.T) {
	handler, core := newSubmitHandler(t)

	fileData := []byte("my submission")
	fields := map[string]string{
		"competition_id": "alamedahacks-2026",
		"deadline":       "2030-01-01T00:00:00Z",
	}

	req := testutil.MakeMultipartRequest(t, "POST", "/api/submit", fields, "file", "entry.pdf", fileData)
	w := httptest.NewRecorder()
	handler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SubmitResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.Success {
		t.Error("Expected success=true")
	}
	if resp.SubmissionID == "" {
		t.Error("Expected non-empty submission_id")
	}
	if resp.ContentHash != cryptocore.HashFile(fileData) {
		t.Error("content_hash should be the SHA-256 of the uploaded file")
	}
	if _, err := base64.StdEncoding.DecodeString(resp.QRImageBase64); err != nil {
		t.Errorf("qr_image_base64 should be valid base64: %v", err)
	}

	// The returned QR data must verify against the same file
	result := core.VerifySubmission(resp.QRData, fileData, "")
	if !result.Valid {
		t.Errorf("Returned QR data should verify: %s", result.Reason)
	}
	if result.SubmissionID != resp.SubmissionID {
		t.Errorf("Expected submission ID %s, got %s", resp.SubmissionID, result.SubmissionID)
	}

	// Row was stored
	var count int
	if err := handler.db.QueryRow("SELECT COUNT(*) FROM submission WHERE id = $1", resp.SubmissionID).Scan(&count); err != nil {
		t.Fatalf("Failed to query submission: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 stored submission, got %d", count)
	}
}

func TestSubmitDuplicate(t *testing.T) {
	handler, _ := newSubmitHandler(t)

	fileData := []byte("the same file twice")
	fields := map[string]string{
		"competition_id": "alamedahacks-2026",
		"deadline":       "2030-01-01T00:00:00Z",
	}

	req := testutil.MakeMultipartRequest(t, "POST", "/api/submit", fields, "file", "entry.zip", fileData)
	w := httptest.NewRecorder()
	handler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var first models.SubmitResponse
	testutil.AssertJSON(t, w, &first)

	req = testutil.MakeMultipartRequest(t, "POST", "/api/submit", fields, "file", "entry.zip", fileData)
	w = httptest.NewRecorder()
	handler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	var dup models.DuplicateResponse
	testutil.AssertJSON(t, w, &dup)
	if dup.ExistingSubmissionID != first.SubmissionID {
		t.Errorf("Expected existing submission %s, got %s", first.SubmissionID, dup.ExistingSubmissionID)
	}
	if dup.Error != "duplicate_submission" {
		t.Errorf("Unexpected error code %q", dup.Error)
	}
}

func TestSubmitSameFileDifferentCompetition(t *testing.T) {
	handler, _ := newSubmitHandler(t)

	fileData := []byte("shared file content")
	deadline := "2030-01-01T00:00:00Z"

	for _, comp := range []string{"comp-a", "comp-b"} {
		fields := map[string]string{"competition_id": comp, "deadline": deadline}
		req := testutil.MakeMultipartRequest(t, "POST", "/api/submit", fields, "file", "entry.zip", fileData)
		w := httptest.NewRecorder()
		handler.Submit(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}
}

func TestSubmitStoresEmail(t *testing.T) {
	handler, _ := newSubmitHandler(t)

	fields := map[string]string{
		"competition_id": "alamedahacks-2026",
		"deadline":       "2030-01-01T00:00:00Z",
		"email":          "team@example.com",
	}
	req := testutil.MakeMultipartRequest(t, "POST", "/api/submit", fields, "file", "entry.zip", []byte("with email"))
	w := httptest.NewRecorder()
	handler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SubmitResponse
	testutil.AssertJSON(t, w, &resp)

	var email *string
	if err := handler.db.QueryRow("SELECT email FROM submission WHERE id = $1", resp.SubmissionID).Scan(&email); err != nil {
		t.Fatalf("Failed to query email: %v", err)
	}
	if email == nil || *email != "team@example.com" {
		t.Errorf("Expected stored email, got %v", email)
	}

	if time.Since(resp.Timestamp) > time.Minute {
		t.Error("Submission timestamp should be recent")
	}
}
