// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pdfexport turns verification results and submission records into
print-ready PDF documents.

# Architecture

Composition is split from drawing. Composers walk a fixed block order,
tracking a vertical cursor, and issue primitive calls against a Backend
interface: colors, rectangles, lines, aligned/rotated text, text-wrap
measurement, image embedding. The production Backend wraps
github.com/go-pdf/fpdf; tests substitute a recording fake.

	exporter := pdfexport.NewExporter(&pdfexport.FpdfFactory{})
	doc, err := exporter.ComposeVerificationReport(ctx, result, qrPNG)
	// doc.Filename == "cryptoqr-verification-<id>.pdf"

# Documents

ComposeVerificationReport renders: header band, VALID/INVALID status
badge, field list, check list (in evaluation order, raw keys for unknown
checks), a failure-reason block when the result is invalid with a
reason, an optional centered QR image, footer, and a rotated watermark
drawn last. Long check lists and failure text paginate rather than run
off the page.

ComposeCertificate renders a decorative single-page certificate:
double border, centered title, centered QR image when supplied, field
list with the content hash truncated for display, centered footer.

# Backends and Readiness

Backends come from a Factory. A factory may return ErrNotReady while its
rendering library initializes; the exporter polls on a short interval
bounded by a retry budget (3s default) and fails the export with
ErrBackendUnavailable when the budget runs out. Each export gets its own
backend instance, so concurrent exports share nothing.

# Failure Policy

ErrInvalidInput is raised before any drawing; a failed export never
yields partial bytes. The single recoverable mid-composition failure is
image embedding: it is logged, counted on the Document, and composition
continues without the image.
*/
package pdfexport
