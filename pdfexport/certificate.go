// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pdfexport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cryptoqr/cryptoqr/models"
)

// Certificate layout. Everything is at absolute offsets except the field
// list, which stacks on a cursor like the report's.
const (
	certBorderInset = 28
	certInnerInset  = 34

	certTitleY    = 180
	certSubtitleY = 208

	certImageSize = 220
	certImageTop  = 250

	certFieldsTop      = 540
	certFieldRowHeight = 26
	certLabelX         = 150
	certValueX         = 290

	certFooterLine1Offset = 124 // from page bottom
	certFooterLine2Offset = 108
	certFooterMetaOffset  = 80
)

// ComposeCertificate renders a decorative single-page submission
// certificate. The optional image is the submission's QR code; nothing
// is drawn in its place when absent.
func (e *Exporter) ComposeCertificate(ctx context.Context, record models.SubmissionRecord, image []byte) (*Document, error) {
	if record.SubmissionID == "" {
		return nil, fmt.Errorf("%w: missing submission ID", ErrInvalidInput)
	}
	if record.ContentHash == "" {
		return nil, fmt.Errorf("%w: missing content hash", ErrInvalidInput)
	}

	b, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}

	pal := certificatePalette
	doc := &Document{Filename: fmt.Sprintf("cryptoqr-certificate-%s.pdf", record.SubmissionID)}
	pw, ph := b.PageSize()

	// Double border frame
	b.SetDrawColor(pal.primary)
	b.SetLineWidth(2)
	b.Rect(certBorderInset, certBorderInset, pw-2*certBorderInset, ph-2*certBorderInset, false)
	b.SetLineWidth(0.75)
	b.Rect(certInnerInset, certInnerInset, pw-2*certInnerInset, ph-2*certInnerInset, false)

	// Centered title block
	b.SetTextColor(pal.primary)
	b.SetFont(30, true)
	b.Text(pw/2, certTitleY, "Certificate of Submission", AlignCenter)
	b.SetFont(12, false)
	b.SetTextColor(pal.textSecondary)
	b.Text(pw/2, certSubtitleY, "Cryptographically signed and timestamped by CryptoQR", AlignCenter)

	if len(image) > 0 {
		x := (pw - certImageSize) / 2
		if err := b.EmbedImage(image, x, certImageTop, certImageSize, certImageSize); err != nil {
			slog.Warn("QR image embed failed, certificate continues without it",
				"submission_id", record.SubmissionID, "error", err)
			doc.ImageEmbedFailures++
		}
	}

	// Field list: left-aligned label and value columns
	cur := newCursor(certFieldsTop)
	fields := []struct {
		label, value string
	}{
		{"Submission ID", record.SubmissionID},
		{"Submitted", formatInstant(record.Timestamp)},
		{"Competition", record.CompetitionID},
		{"Content Hash", truncateHash(record.ContentHash)},
	}
	for _, f := range fields {
		y := cur.pos()
		b.SetFont(11, false)
		b.SetTextColor(pal.textSecondary)
		b.Text(certLabelX, y, f.label, AlignLeft)
		b.SetFont(11, true)
		b.SetTextColor(pal.textPrimary)
		b.Text(certValueX, y, f.value, AlignLeft)
		cur.advance(certFieldRowHeight)
	}

	// Centered footer lines
	b.SetFont(10, false)
	b.SetTextColor(pal.textPrimary)
	b.Text(pw/2, ph-certFooterLine1Offset, "This certificate attests that the document identified above was", AlignCenter)
	b.Text(pw/2, ph-certFooterLine2Offset, "received, hashed, and signed at the recorded time.", AlignCenter)
	b.SetFont(8.5, false)
	b.SetTextColor(pal.textSecondary)
	b.Text(pw/2, ph-certFooterMetaOffset, fmt.Sprintf("%s  |  issued %s", models.GeneratorName, formatInstant(time.Now())), AlignCenter)

	data, err := b.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to finalize document: %w", err)
	}
	doc.Data = data
	return doc, nil
}
