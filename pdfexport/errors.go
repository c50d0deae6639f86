// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pdfexport

import "errors"

var (
	// ErrNotReady is returned by a Factory whose rendering library is
	// still initializing. The exporter polls until the retry budget runs out.
	ErrNotReady = errors.New("pdfexport: backend not ready")

	// ErrBackendUnavailable means the rendering backend never became
	// ready within the retry budget. The export fails with no output.
	ErrBackendUnavailable = errors.New("pdfexport: rendering backend unavailable")

	// ErrInvalidInput means a required field is missing or malformed on
	// the input model. Raised before any drawing so a failed export
	// never yields a half-built document.
	ErrInvalidInput = errors.New("pdfexport: invalid input")
)
