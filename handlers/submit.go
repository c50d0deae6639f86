// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cryptoqr/cryptoqr/cliparse"
	"github.com/cryptoqr/cryptoqr/cryptocore"
	"github.com/cryptoqr/cryptoqr/mailer"
	"github.com/cryptoqr/cryptoqr/middleware"
	"github.com/cryptoqr/cryptoqr/models"
	"github.com/cryptoqr/cryptoqr/qrgen"
)

// Upload cap, matching the original service limit
const maxUploadBytes = 50 << 20

type SubmitHandler struct {
	db   *sql.DB
	cfg  cliparse.Config
	core *cryptocore.Core
	mail *mailer.Mailer
}

func NewSubmitHandler(db *sql.DB, cfg cliparse.Config, core *cryptocore.Core, mail *mailer.Mailer) *SubmitHandler {
	return &SubmitHandler{db: db, cfg: cfg, core: core, mail: mail}
}

// Submit handles POST /api/submit
// Accepts a multipart form with the file plus competition_id, deadline,
// and an optional email for the confirmation message.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
			"File exceeds the "+humanize.Bytes(maxUploadBytes)+" limit (got "+humanize.Bytes(uint64(header.Size))+")")
		return
	}

	fileData, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		slog.Error("failed to read upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	if len(fileData) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is empty")
		return
	}
	if len(fileData) > maxUploadBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
			"File exceeds the "+humanize.Bytes(maxUploadBytes)+" limit")
		return
	}

	competitionID := r.FormValue("competition_id")
	if competitionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "competition_id is required")
		return
	}
	deadline := r.FormValue("deadline")
	if deadline == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "deadline is required")
		return
	}
	email := r.FormValue("email")

	// Duplicate detection: same file, same competition
	contentHash := cryptocore.HashFile(fileData)
	var existingID string
	var existingTS time.Time
	err = h.db.QueryRow(`
		SELECT id, submitted_at FROM submission
		WHERE competition_id = $1 AND content_hash = $2
	`, competitionID, contentHash).Scan(&existingID, &existingTS)
	if err == nil {
		middleware.JSONResponse(w, http.StatusConflict, models.DuplicateResponse{
			Error:                "duplicate_submission",
			Message:              "This file has already been submitted to this competition",
			ExistingSubmissionID: existingID,
			ExistingTimestamp:    existingTS,
		})
		return
	}
	if err != sql.ErrNoRows {
		slog.Error("failed to check for duplicates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	sub, err := h.core.CreateSubmission(fileData, competitionID, deadline, email)
	if err != nil {
		slog.Error("failed to sign submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create submission")
		return
	}

	var emailCol *string
	if email != "" {
		emailCol = &email
	}
	_, err = h.db.Exec(`
		INSERT INTO submission (id, competition_id, content_hash, submitted_at, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sub.SubmissionID, competitionID, sub.ContentHash, sub.Timestamp, emailCol, time.Now())
	if err != nil {
		slog.Error("failed to insert submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store submission")
		return
	}

	qrData := models.QRData{
		Payload:   sub.Payload.AsMap(),
		Signature: sub.Signature,
		Version:   sub.Version,
	}
	qrImage, err := qrgen.EncodeBase64(qrData)
	if err != nil {
		slog.Error("failed to generate QR code", "error", err, "submission_id", sub.SubmissionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	slog.Info("submission recorded",
		"submission_id", sub.SubmissionID,
		"competition_id", competitionID,
		"size", humanize.Bytes(uint64(len(fileData))),
	)

	// Confirmation email is best-effort; the submission is already stored
	if email != "" && h.mail.Configured() {
		record := models.SubmissionRecord{
			SubmissionID:  sub.SubmissionID,
			CompetitionID: competitionID,
			ContentHash:   sub.ContentHash,
			Timestamp:     sub.Timestamp,
		}
		if png, err := qrgen.EncodePNG(qrData); err == nil {
			if err := h.mail.SendSubmissionConfirmation(email, record, png); err != nil {
				slog.Warn("confirmation email failed", "error", err, "submission_id", sub.SubmissionID)
			}
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponse{
		Success:         true,
		SubmissionID:    sub.SubmissionID,
		Timestamp:       sub.Timestamp,
		ContentHash:     sub.ContentHash,
		QRData:          qrData,
		QRImageBase64:   qrImage,
		VerificationURL: h.cfg.BaseURL + "/verify",
	})
}
