// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the CryptoQR API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, core)

# Endpoints

Health and service info:

	GET /health
	GET /
	GET /api/public-key

Submission:

	POST /api/submit - Sign a file and return its QR code

Verification and document export:

	POST /api/verify        - Check a file against its QR code
	POST /api/verify/export - Same checks, responds with the PDF report
	POST /api/certificate   - Certificate PDF for a stored submission

Stats:

	GET /api/stats/{competition_id}
	GET /api/dashboard

# Handler Initialization

The router creates handler instances with dependency injection:

	submitHandler := handlers.NewSubmitHandler(db, cfg, core, mail)
	verifyHandler := handlers.NewVerifyHandler(db, cfg, core, exporter)

The mailer and the PDF exporter are built once here and shared.
*/
package router
