// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/cryptoqr/cryptoqr/cliparse"
	"github.com/cryptoqr/cryptoqr/cryptocore"
	"github.com/cryptoqr/cryptoqr/handlers"
	"github.com/cryptoqr/cryptoqr/mailer"
	"github.com/cryptoqr/cryptoqr/middleware"
	"github.com/cryptoqr/cryptoqr/pdfexport"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, core *cryptocore.Core) *http.ServeMux {
	mux := http.NewServeMux()

	// Shared collaborators
	mail := mailer.New(cfg)
	exporter := pdfexport.NewExporter(pdfexport.FpdfFactory{})

	// Initialize handlers
	submitHandler := handlers.NewSubmitHandler(db, cfg, core, mail)
	verifyHandler := handlers.NewVerifyHandler(db, cfg, core, exporter)
	certificateHandler := handlers.NewCertificateHandler(db, cfg, exporter)
	infoHandler := handlers.NewInfoHandler(db, cfg, core)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Submission
	mux.HandleFunc("POST /api/submit", middleware.WithLogging(submitHandler.Submit))

	// Verification and document export
	mux.HandleFunc("POST /api/verify", middleware.WithLogging(verifyHandler.Verify))
	mux.HandleFunc("POST /api/verify/export", middleware.WithLogging(verifyHandler.Export))
	mux.HandleFunc("POST /api/certificate", middleware.WithLogging(certificateHandler.Certificate))

	// Service info and stats
	mux.HandleFunc("GET /api/public-key", middleware.WithLogging(infoHandler.PublicKey))
	mux.HandleFunc("GET /api/stats/{competition_id}", middleware.WithLogging(infoHandler.Stats))
	mux.HandleFunc("GET /api/dashboard", middleware.WithLogging(infoHandler.Dashboard))

	// Root endpoint
	mux.HandleFunc("GET /", middleware.WithLogging(infoHandler.Root))

	return mux
}
