// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cryptoqr/cryptoqr/cliparse"
	"github.com/cryptoqr/cryptoqr/middleware"
	"github.com/cryptoqr/cryptoqr/models"
	"github.com/cryptoqr/cryptoqr/pdfexport"
	"github.com/cryptoqr/cryptoqr/qrgen"
)

type CertificateHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	exporter *pdfexport.Exporter
}

func NewCertificateHandler(db *sql.DB, cfg cliparse.Config, exporter *pdfexport.Exporter) *CertificateHandler {
	return &CertificateHandler{db: db, cfg: cfg, exporter: exporter}
}

// Certificate handles POST /api/certificate
// Composes the submission certificate PDF for a stored submission. When
// the request carries the original qr_data, the QR is embedded.
func (h *CertificateHandler) Certificate(w http.ResponseWriter, r *http.Request) {
	var req models.CertificateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.SubmissionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "submission_id is required")
		return
	}

	var record models.SubmissionRecord
	err := h.db.QueryRow(`
		SELECT id, competition_id, content_hash, submitted_at, email
		FROM submission
		WHERE id = $1
	`, req.SubmissionID).Scan(
		&record.SubmissionID, &record.CompetitionID, &record.ContentHash,
		&record.Timestamp, &record.Email,
	)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Submission not found")
		return
	}
	if err != nil {
		slog.Error("failed to query submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var qrPNG []byte
	if req.QRData != "" {
		qr, err := parseQRData(req.QRData)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "qr_data must be valid QR payload JSON")
			return
		}
		if png, err := qrgen.EncodePNG(qr); err == nil {
			qrPNG = png
		}
	}

	doc, err := h.exporter.ComposeCertificate(r.Context(), record, qrPNG)
	if err != nil {
		switch {
		case errors.Is(err, pdfexport.ErrBackendUnavailable):
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "PDF rendering is temporarily unavailable")
		case errors.Is(err, pdfexport.ErrInvalidInput):
			middleware.ErrorResponse(w, http.StatusBadRequest, "Stored submission cannot be exported")
		default:
			slog.Error("certificate export failed", "error", err, "submission_id", record.SubmissionID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate certificate")
		}
		return
	}

	slog.Info("certificate exported",
		"submission_id", record.SubmissionID,
		"embed_failures", doc.ImageEmbedFailures,
	)
	writePDF(w, doc)
}
