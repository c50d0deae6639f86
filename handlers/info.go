// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"crypto/ed25519"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/cryptoqr/cryptoqr/cliparse"
	"github.com/cryptoqr/cryptoqr/cryptocore"
	"github.com/cryptoqr/cryptoqr/middleware"
	"github.com/cryptoqr/cryptoqr/models"
)

type InfoHandler struct {
	db   *sql.DB
	cfg  cliparse.Config
	core *cryptocore.Core
}

func NewInfoHandler(db *sql.DB, cfg cliparse.Config, core *cryptocore.Core) *InfoHandler {
	return &InfoHandler{db: db, cfg: cfg, core: core}
}

// Root handles GET /
func (h *InfoHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"service": models.GeneratorName,
		"version": models.PayloadVersion,
		"endpoints": []string{
			"POST /api/submit",
			"POST /api/verify",
			"POST /api/verify/export",
			"POST /api/certificate",
			"GET /api/public-key",
			"GET /api/stats/{competition_id}",
			"GET /api/dashboard",
		},
	})
}

// PublicKey handles GET /api/public-key
func (h *InfoHandler) PublicKey(w http.ResponseWriter, r *http.Request) {
	pemStr, err := h.core.ExportPublicKey()
	if err != nil {
		slog.Error("failed to export public key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export public key")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PublicKeyResponse{
		PublicKey: pemStr,
		Algorithm: "Ed25519",
		KeySize:   ed25519.PublicKeySize,
	})
}

// Stats handles GET /api/stats/{competition_id}
func (h *InfoHandler) Stats(w http.ResponseWriter, r *http.Request) {
	competitionID := r.PathValue("competition_id")
	if competitionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "competition_id is required")
		return
	}

	var total int
	err := h.db.QueryRow(`
		SELECT COUNT(*) FROM submission WHERE competition_id = $1
	`, competitionID).Scan(&total)
	if err != nil {
		slog.Error("failed to count submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.CompetitionStatsResponse{
		CompetitionID:    competitionID,
		TotalSubmissions: total,
	}
	if total == 0 {
		resp.Message = "No submissions yet"
		middleware.JSONResponse(w, http.StatusOK, resp)
		return
	}

	// Selecting the column directly keeps the driver's timestamp decoding
	var first, last time.Time
	err = h.db.QueryRow(`
		SELECT submitted_at FROM submission
		WHERE competition_id = $1
		ORDER BY submitted_at ASC LIMIT 1
	`, competitionID).Scan(&first)
	if err == nil {
		err = h.db.QueryRow(`
			SELECT submitted_at FROM submission
			WHERE competition_id = $1
			ORDER BY submitted_at DESC LIMIT 1
		`, competitionID).Scan(&last)
	}
	if err != nil {
		slog.Error("failed to query submission range", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp.FirstSubmission = &first
	resp.LastSubmission = &last
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Dashboard handles GET /api/dashboard
func (h *InfoHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var total int
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM submission`).Scan(&total); err != nil {
		slog.Error("failed to count submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT competition_id, COUNT(*) AS n
		FROM submission
		GROUP BY competition_id
		ORDER BY n DESC, competition_id
	`)
	if err != nil {
		slog.Error("failed to query competitions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	competitions := []models.CompetitionSummary{}
	for rows.Next() {
		var c models.CompetitionSummary
		if err := rows.Scan(&c.CompetitionID, &c.Submissions); err != nil {
			slog.Error("failed to scan competition row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		competitions = append(competitions, c)
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		TotalSubmissions:  total,
		TotalCompetitions: len(competitions),
		Competitions:      competitions,
		APIVersion:        models.PayloadVersion,
	})
}
