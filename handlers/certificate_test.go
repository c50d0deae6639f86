// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cryptoqr/cryptoqr/models"
	"github.com/cryptoqr/cryptoqr/pdfexport"
	"github.com/cryptoqr/cryptoqr/testutil"
)

func newCertificateHandler(t *testing.T) *CertificateHandler {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	exporter := pdfexport.NewExporter(pdfexport.FpdfFactory{})
	return NewCertificateHandler(conn, cfg, exporter)
}

func TestCertificateForStoredSubmission(t *testing.T) {
	handler := newCertificateHandler(t)

	subID := testutil.CreateTestSubmission(t, handler.db, "alamedahacks-2026",
		"0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC))

	req := testutil.MakeRequest("POST", "/api/certificate",
		models.CertificateRequest{SubmissionID: subID}, nil)
	w := httptest.NewRecorder()
	handler.Certificate(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", ct)
	}
	wantName := "cryptoqr-certificate-" + subID + ".pdf"
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, wantName) {
		t.Errorf("Expected filename %s in disposition, got %s", wantName, cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("Response body should be a PDF")
	}
}

func TestCertificateWithQRData(t *testing.T) {
	handler := newCertificateHandler(t)

	subID := testutil.CreateTestSubmission(t, handler.db, "alamedahacks-2026",
		"feedfacefeedfacefeedfacefeedfacefeedfacefeedfacefeedfacefeedface",
		time.Now().UTC())

	qrData := `{"payload":{"submission_id":"` + subID + `"},"signature":"c2ln","version":"1.0.0"}`
	req := testutil.MakeRequest("POST", "/api/certificate",
		models.CertificateRequest{SubmissionID: subID, QRData: qrData}, nil)
	w := httptest.NewRecorder()
	handler.Certificate(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("Response body should be a PDF")
	}
}

func TestCertificateErrors(t *testing.T) {
	handler := newCertificateHandler(t)

	subID := testutil.CreateTestSubmission(t, handler.db, "alamedahacks-2026",
		"aaaabbbbccccddddaaaabbbbccccddddaaaabbbbccccddddaaaabbbbccccdddd",
		time.Now().UTC())

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "unknown submission",
			body:           models.CertificateRequest{SubmissionID: "does-not-exist"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing submission_id",
			body:           models.CertificateRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed qr_data",
			body:           models.CertificateRequest{SubmissionID: subID, QRData: "{broken"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if str, ok := tt.body.(string); ok {
				req = httptest.NewRequest("POST", "/api/certificate", strings.NewReader(str))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = testutil.MakeRequest("POST", "/api/certificate", tt.body, nil)
			}
			w := httptest.NewRecorder()
			handler.Certificate(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}
