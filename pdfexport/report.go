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

// Report layout, in points on an A4 page. All blocks below the header
// stack on the cursor; the header and footer sit at absolute offsets.
const (
	pageMargin = 48

	headerHeight    = 96
	headerTitleY    = 54
	headerSubtitleY = 78

	badgeTop    = headerHeight + 28
	badgeWidth  = 150
	badgeHeight = 34
	badgeRadius = 8

	fieldRowHeight = 22
	fieldValueX    = pageMargin + 150

	sectionGap     = 18
	checkRowHeight = 20
	checkStatusX   = pageMargin + 330

	failurePadding    = 12
	failureLineHeight = 14

	reportImageSize = 150
	imageGap        = 18

	footerRuleOffset = 64 // from page bottom
	footerTextOffset = 46

	// Space kept clear at the page bottom; crossing it forces a page break
	bottomReserve = 84

	watermarkSize = 96
)

// ComposeVerificationReport renders a verification result as a
// print-ready PDF. The optional image is the submission's QR code; a
// failed embed is logged and counted, never fatal.
func (e *Exporter) ComposeVerificationReport(ctx context.Context, result models.VerificationResult, image []byte) (*Document, error) {
	if result.SubmissionID == "" {
		return nil, fmt.Errorf("%w: missing submission ID", ErrInvalidInput)
	}
	if result.VerifiedAt.IsZero() {
		return nil, fmt.Errorf("%w: missing verification time", ErrInvalidInput)
	}

	b, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}

	c := &reportComposer{
		b:   b,
		pal: reportPalette,
		cur: newCursor(badgeTop + badgeHeight + 28),
		doc: &Document{Filename: fmt.Sprintf("cryptoqr-verification-%s.pdf", result.SubmissionID)},
	}

	c.header()
	c.statusBadge(result.Valid)
	c.fieldList(result)
	c.checkList(result.Checks)
	if !result.Valid && result.Reason != "" {
		c.failureBlock(result.Reason)
	}
	if len(image) > 0 {
		c.imageBlock(image, result.SubmissionID)
	}
	c.footer()
	c.watermark(result.Valid)

	data, err := b.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to finalize document: %w", err)
	}
	c.doc.Data = data
	return c.doc, nil
}

type reportComposer struct {
	b   Backend
	pal palette
	cur *cursor
	doc *Document
}

// ensureRoom starts a new page when the next block would cross into the
// footer zone. Many checks or a long failure reason paginate instead of
// running off the page.
func (c *reportComposer) ensureRoom(needed float64) {
	_, ph := c.b.PageSize()
	if c.cur.pos()+needed <= ph-bottomReserve {
		return
	}
	c.b.AddPage()
	c.cur.reset(pageMargin)
}

func (c *reportComposer) header() {
	pw, _ := c.b.PageSize()

	c.b.SetFillColor(c.pal.primary)
	c.b.Rect(0, 0, pw, headerHeight, true)

	c.b.SetTextColor(white)
	c.b.SetFont(26, true)
	c.b.Text(pageMargin, headerTitleY, "Verification Report", AlignLeft)
	c.b.SetFont(11, false)
	c.b.Text(pageMargin, headerSubtitleY, "CryptoQR cryptographic submission verification", AlignLeft)
}

func (c *reportComposer) statusBadge(valid bool) {
	glyph, color := "VALID", c.pal.success
	if !valid {
		glyph, color = "INVALID", c.pal.failure
	}

	c.b.SetFillColor(color)
	c.b.RoundedRect(pageMargin, badgeTop, badgeWidth, badgeHeight, badgeRadius)

	c.b.SetTextColor(white)
	c.b.SetFont(15, true)
	c.b.Text(pageMargin+badgeWidth/2, badgeTop+badgeHeight/2+5, glyph, AlignCenter)
}

func (c *reportComposer) fieldList(result models.VerificationResult) {
	fields := []struct {
		label, value string
	}{
		{"Submission ID", result.SubmissionID},
		{"Submitted", formatInstant(result.Timestamp)},
		{"Competition", result.CompetitionID},
		{"Verified", formatInstant(result.VerifiedAt)},
	}

	for _, f := range fields {
		c.ensureRoom(fieldRowHeight)
		y := c.cur.pos()
		c.b.SetFont(10, false)
		c.b.SetTextColor(c.pal.textSecondary)
		c.b.Text(pageMargin, y, f.label, AlignLeft)
		c.b.SetFont(10, true)
		c.b.SetTextColor(c.pal.textPrimary)
		c.b.Text(fieldValueX, y, f.value, AlignLeft)
		c.cur.advance(fieldRowHeight)
	}
}

func (c *reportComposer) checkList(checks models.CheckList) {
	c.ensureRoom(sectionGap + checkRowHeight)
	c.cur.advance(sectionGap)

	c.b.SetFont(13, true)
	c.b.SetTextColor(c.pal.textPrimary)
	c.b.Text(pageMargin, c.cur.pos(), "Verification Checks", AlignLeft)
	c.cur.advance(checkRowHeight + 4)

	for _, check := range checks {
		c.ensureRoom(checkRowHeight)
		y := c.cur.pos()

		c.b.SetFont(10, false)
		c.b.SetTextColor(c.pal.textPrimary)
		c.b.Text(pageMargin+8, y, CheckLabel(check.Name), AlignLeft)

		c.b.SetFont(10, true)
		if check.Passed {
			c.b.SetTextColor(c.pal.success)
			c.b.Text(checkStatusX, y, "Pass", AlignLeft)
		} else {
			c.b.SetTextColor(c.pal.failure)
			c.b.Text(checkStatusX, y, "Fail", AlignLeft)
		}
		c.cur.advance(checkRowHeight)
	}
}

func (c *reportComposer) failureBlock(reason string) {
	pw, _ := c.b.PageSize()
	textWidth := pw - 2*pageMargin - 2*failurePadding

	c.b.SetFont(10, false)
	lines := c.b.WrapText(reason, textWidth)

	labelHeight := 16.0
	blockHeight := 2*failurePadding + labelHeight + float64(len(lines))*failureLineHeight

	c.ensureRoom(sectionGap + blockHeight)
	c.cur.advance(sectionGap)
	top := c.cur.pos()

	c.b.SetFillColor(tintPanel)
	c.b.Rect(pageMargin, top, pw-2*pageMargin, blockHeight, true)

	y := top + failurePadding + 4
	c.b.SetFont(11, true)
	c.b.SetTextColor(c.pal.failure)
	c.b.Text(pageMargin+failurePadding, y, "Failure Reason", AlignLeft)
	y += labelHeight

	c.b.SetFont(10, false)
	c.b.SetTextColor(c.pal.textPrimary)
	for _, line := range lines {
		c.b.Text(pageMargin+failurePadding, y, line, AlignLeft)
		y += failureLineHeight
	}

	c.cur.advance(blockHeight)
}

func (c *reportComposer) imageBlock(img []byte, submissionID string) {
	c.ensureRoom(sectionGap + reportImageSize + imageGap)
	c.cur.advance(sectionGap)

	pw, _ := c.b.PageSize()
	x := (pw - reportImageSize) / 2
	if err := c.b.EmbedImage(img, x, c.cur.pos(), reportImageSize, reportImageSize); err != nil {
		slog.Warn("QR image embed failed, report continues without it",
			"submission_id", submissionID, "error", err)
		c.doc.ImageEmbedFailures++
		return
	}
	c.cur.advance(reportImageSize + imageGap)
}

func (c *reportComposer) footer() {
	pw, ph := c.b.PageSize()

	c.b.SetDrawColor(c.pal.textSecondary)
	c.b.SetLineWidth(0.5)
	c.b.Line(pageMargin, ph-footerRuleOffset, pw-pageMargin, ph-footerRuleOffset)

	c.b.SetFont(8.5, false)
	c.b.SetTextColor(c.pal.textSecondary)
	generated := fmt.Sprintf("%s  |  generated %s", models.GeneratorName, formatInstant(time.Now()))
	c.b.Text(pageMargin, ph-footerTextOffset, generated, AlignLeft)
	c.b.Text(pw-pageMargin, ph-footerTextOffset, "Cryptographically verified document", AlignRight)
}

// watermark is drawn last so opaque blocks never obscure it.
func (c *reportComposer) watermark(valid bool) {
	pw, ph := c.b.PageSize()

	glyph, tint := "VALID", tintSuccess
	if !valid {
		glyph, tint = "INVALID", tintFailure
	}

	c.b.SetFont(watermarkSize, true)
	c.b.SetTextColor(tint)
	c.b.RotatedText(pw/2, ph/2, glyph, 45)
}
