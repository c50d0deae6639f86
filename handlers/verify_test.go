// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cryptoqr/cryptoqr/cryptocore"
	"github.com/cryptoqr/cryptoqr/models"
	"github.com/cryptoqr/cryptoqr/pdfexport"
	"github.com/cryptoqr/cryptoqr/testutil"
)

func newVerifyHandler(t *testing.T) (*VerifyHandler, *cryptocore.Core) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	core, err := cryptocore.New("")
	if err != nil {
		t.Fatalf("Failed to create core: %v", err)
	}
	exporter := pdfexport.NewExporter(pdfexport.FpdfFactory{})
	return NewVerifyHandler(conn, cfg, core, exporter), core
}

// signedQRData creates a submission for fileData and returns the qr_data
// form value a client would send.
func signedQRData(t *testing.T, core *cryptocore.Core, fileData []byte) (string, cryptocore.Submission) {
	t.Helper()

	sub, err := core.CreateSubmission(fileData, "alamedahacks-2026", "2030-01-01T00:00:00Z", "")
	if err != nil {
		t.Fatalf("Failed to create submission: %v", err)
	}
	qr := models.QRData{
		Payload:   sub.Payload.AsMap(),
		Signature: sub.Signature,
		Version:   sub.Version,
	}
	raw, err := json.Marshal(qr)
	if err != nil {
		t.Fatalf("Failed to marshal QR data: %v", err)
	}
	return string(raw), sub
}

func TestVerifyValidSubmission(t *testing.T) {
	handler, core := newVerifyHandler(t)

	fileData := []byte("authentic submission")
	qrData, sub := signedQRData(t, core, fileData)

	req := testutil.MakeMultipartRequest(t, "POST", "/api/verify",
		map[string]string{"qr_data": qrData}, "file", "entry.zip", fileData)
	w := httptest.NewRecorder()
	handler.Verify(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.VerifyResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.Valid {
		t.Errorf("Expected valid result, got reason %q", resp.Reason)
	}
	if resp.SubmissionID != sub.SubmissionID {
		t.Errorf("Expected submission ID %s, got %s", sub.SubmissionID, resp.SubmissionID)
	}
	if len(resp.Checks) != 4 {
		t.Errorf("Expected 4 checks, got %d", len(resp.Checks))
	}
	if !resp.Checks.AllPassed() {
		t.Error("All checks should pass")
	}

	// Outcome was logged
	var count int
	err := handler.db.QueryRow(
		"SELECT COUNT(*) FROM verification_log WHERE submission_id = $1", sub.SubmissionID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query verification log: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 log row, got %d", count)
	}
}

func TestVerifyTamperedFile(t *testing.T) {
	handler, core := newVerifyHandler(t)

	qrData, _ := signedQRData(t, core, []byte("original content"))

	req := testutil.MakeMultipartRequest(t, "POST", "/api/verify",
		map[string]string{"qr_data": qrData}, "file", "entry.zip", []byte("tampered content"))
	w := httptest.NewRecorder()
	handler.Verify(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.VerifyResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Valid {
		t.Error("Tampered file should not verify")
	}
	if !strings.Contains(resp.Reason, "File content does not match") {
		t.Errorf("Expected content mismatch reason, got %q", resp.Reason)
	}
	if check, ok := resp.Checks.Get("content_match"); !ok || check {
		t.Error("content_match check should be present and failed")
	}
}

func TestVerifyBadInput(t *testing.T) {
	handler, core := newVerifyHandler(t)
	qrData, _ := signedQRData(t, core, []byte("content"))

	tests := []struct {
		name           string
		fields         map[string]string
		fileField      string
		expectedStatus int
	}{
		{
			name:           "missing qr_data",
			fields:         map[string]string{},
			fileField:      "file",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed qr_data",
			fields:         map[string]string{"qr_data": "{not json"},
			fileField:      "file",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing file",
			fields:         map[string]string{"qr_data": qrData},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeMultipartRequest(t, "POST", "/api/verify", tt.fields, tt.fileField, "entry.zip", []byte("content"))
			w := httptest.NewRecorder()
			handler.Verify(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestVerifyRateLimit(t *testing.T) {
	handler, core := newVerifyHandler(t)

	fileData := []byte("rate limited content")
	qrData, _ := signedQRData(t, core, fileData)

	// httptest requests share one RemoteAddr, so they count against one key
	for i := 0; i < verifyRateLimit; i++ {
		req := testutil.MakeMultipartRequest(t, "POST", "/api/verify",
			map[string]string{"qr_data": qrData}, "file", "entry.zip", fileData)
		w := httptest.NewRecorder()
		handler.Verify(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	req := testutil.MakeMultipartRequest(t, "POST", "/api/verify",
		map[string]string{"qr_data": qrData}, "file", "entry.zip", fileData)
	w := httptest.NewRecorder()
	handler.Verify(w, req)
	testutil.AssertStatus(t, w, http.StatusTooManyRequests)
}

func TestExportReturnsReportPDF(t *testing.T) {
	handler, core := newVerifyHandler(t)

	fileData := []byte("submission for export")
	qrData, sub := signedQRData(t, core, fileData)

	req := testutil.MakeMultipartRequest(t, "POST", "/api/verify/export",
		map[string]string{"qr_data": qrData}, "file", "entry.zip", fileData)
	w := httptest.NewRecorder()
	handler.Export(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", ct)
	}
	wantName := "cryptoqr-verification-" + sub.SubmissionID + ".pdf"
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, wantName) {
		t.Errorf("Expected filename %s in disposition, got %s", wantName, cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("Response body should be a PDF")
	}
}

func TestExportInvalidQRStillProducesReport(t *testing.T) {
	handler, _ := newVerifyHandler(t)

	// Structurally valid JSON but garbage payload: verification yields an
	// invalid result, which still exports as a report
	qrData := `{"payload":{"bogus":"field"},"signature":"","version":"1.0.0"}`

	req := testutil.MakeMultipartRequest(t, "POST", "/api/verify/export",
		map[string]string{"qr_data": qrData}, "file", "entry.zip", []byte("content"))
	w := httptest.NewRecorder()
	handler.Export(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("Response body should be a PDF")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "cryptoqr-verification-unknown.pdf") {
		t.Errorf("Expected unknown-submission filename, got %s", cd)
	}
}

func TestExportBadRequest(t *testing.T) {
	handler, _ := newVerifyHandler(t)

	req := testutil.MakeMultipartRequest(t, "POST", "/api/verify/export",
		map[string]string{"qr_data": "{not json"}, "file", "entry.zip", []byte("content"))
	w := httptest.NewRecorder()
	handler.Export(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
