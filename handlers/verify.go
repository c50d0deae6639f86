// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cryptoqr/cryptoqr/cliparse"
	"github.com/cryptoqr/cryptoqr/cryptocore"
	"github.com/cryptoqr/cryptoqr/middleware"
	"github.com/cryptoqr/cryptoqr/models"
	"github.com/cryptoqr/cryptoqr/pdfexport"
	"github.com/cryptoqr/cryptoqr/qrgen"
)

// Per-IP verification budget
const (
	verifyRateLimit  = 20
	verifyRateWindow = 5 * time.Minute
)

type VerifyHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	core     *cryptocore.Core
	exporter *pdfexport.Exporter
	limiter  *middleware.RateLimiter
}

func NewVerifyHandler(db *sql.DB, cfg cliparse.Config, core *cryptocore.Core, exporter *pdfexport.Exporter) *VerifyHandler {
	return &VerifyHandler{
		db:       db,
		cfg:      cfg,
		core:     core,
		exporter: exporter,
		limiter:  middleware.NewRateLimiter(verifyRateLimit, verifyRateWindow),
	}
}

// Verify handles POST /api/verify
// Accepts a multipart form with the file and the decoded qr_data JSON.
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ipHash := middleware.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	if !h.limiter.Allow(ipHash) {
		middleware.ErrorResponse(w, http.StatusTooManyRequests, "Too many verification attempts, try again later")
		return
	}

	result, ok := h.runVerification(w, r)
	if !ok {
		return
	}

	h.logVerification(result, ipHash)

	resp := models.VerifyResponse{
		Valid:         result.Valid,
		SubmissionID:  result.SubmissionID,
		CompetitionID: result.CompetitionID,
		Checks:        result.Checks,
		Reason:        result.Reason,
		VerifiedAt:    result.VerifiedAt,
	}
	if !result.Timestamp.IsZero() {
		resp.Timestamp = result.Timestamp.Format(time.RFC3339)
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Export handles POST /api/verify/export
// Runs the same verification, then returns the PDF report as an attachment.
func (h *VerifyHandler) Export(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runVerification(w, r)
	if !ok {
		return
	}

	// The embedded QR mirrors what the verifier scanned
	var qrPNG []byte
	if qr, err := parseQRData(r.FormValue("qr_data")); err == nil {
		if png, err := qrgen.EncodePNG(qr); err == nil {
			qrPNG = png
		}
	}

	doc, err := h.exporter.ComposeVerificationReport(r.Context(), result, qrPNG)
	if err != nil {
		switch {
		case errors.Is(err, pdfexport.ErrBackendUnavailable):
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "PDF rendering is temporarily unavailable")
		case errors.Is(err, pdfexport.ErrInvalidInput):
			middleware.ErrorResponse(w, http.StatusBadRequest, "Verification result cannot be exported")
		default:
			slog.Error("report export failed", "error", err, "submission_id", result.SubmissionID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate report")
		}
		return
	}

	slog.Info("report exported",
		"submission_id", result.SubmissionID,
		"valid", result.Valid,
		"embed_failures", doc.ImageEmbedFailures,
	)
	writePDF(w, doc)
}

// runVerification parses the multipart request and runs the checks.
// Writes the error response itself and returns ok=false on bad input.
func (h *VerifyHandler) runVerification(w http.ResponseWriter, r *http.Request) (models.VerificationResult, bool) {
	file, _, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return models.VerificationResult{}, false
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		slog.Error("failed to read upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read file")
		return models.VerificationResult{}, false
	}

	qr, err := parseQRData(r.FormValue("qr_data"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "qr_data must be valid QR payload JSON")
		return models.VerificationResult{}, false
	}

	return h.core.VerifySubmission(qr, fileData, ""), true
}

func (h *VerifyHandler) logVerification(result models.VerificationResult, ipHash string) {
	logID, err := cryptocore.GenerateSubmissionID()
	if err != nil {
		slog.Error("failed to generate log ID", "error", err)
		return
	}
	_, err = h.db.Exec(`
		INSERT INTO verification_log (id, submission_id, valid, client_ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, logID, result.SubmissionID, result.Valid, ipHash, time.Now())
	if err != nil {
		slog.Error("failed to log verification", "error", err)
	}

	slog.Info("verification completed",
		"submission_id", result.SubmissionID,
		"valid", result.Valid,
	)
}

func parseQRData(raw string) (models.QRData, error) {
	var qr models.QRData
	if raw == "" {
		return qr, errors.New("qr_data is required")
	}
	if err := json.Unmarshal([]byte(raw), &qr); err != nil {
		return qr, err
	}
	return qr, nil
}

func writePDF(w http.ResponseWriter, doc *pdfexport.Document) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		slog.Error("failed to write PDF response", "error", err)
	}
}
