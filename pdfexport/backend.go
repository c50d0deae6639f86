// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pdfexport

import (
	"context"
	"errors"
	"time"
)

// Align controls horizontal text placement relative to the given x.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Backend is the rendering collaborator: it owns pages, fonts, and
// pixels. Composers only issue these primitives in sequence and never
// read document state back, apart from page dimensions and text
// measurement.
type Backend interface {
	// PageSize returns the page width and height in points.
	PageSize() (w, h float64)
	// AddPage starts a new blank page; subsequent drawing lands there.
	AddPage()

	SetFillColor(c RGB)
	SetDrawColor(c RGB)
	SetTextColor(c RGB)
	SetLineWidth(w float64)
	// SetFont selects the document face at the given size, optionally bold.
	SetFont(size float64, bold bool)

	// Rect draws a rectangle, filled or stroked.
	Rect(x, y, w, h float64, fill bool)
	// RoundedRect draws a filled rectangle with rounded corners.
	RoundedRect(x, y, w, h, radius float64)
	Line(x1, y1, x2, y2 float64)

	// Text draws a single line at the baseline y, aligned to x.
	Text(x, y float64, s string, align Align)
	// RotatedText draws s centered on (x, y), rotated counterclockwise
	// by angle degrees.
	RotatedText(x, y float64, s string, angle float64)
	// WrapText splits s into lines that each fit within width at the
	// currently-set font. A string that already fits comes back as a
	// single unchanged line.
	WrapText(s string, width float64) []string

	// EmbedImage places raster image bytes at (x, y) scaled to w x h.
	// The one mid-composition operation allowed to fail recoverably.
	EmbedImage(img []byte, x, y, w, h float64) error

	// Output finalizes the document and returns its bytes.
	Output() ([]byte, error)
}

// Factory produces backend instances. New returns ErrNotReady while the
// underlying rendering library is still initializing (deferred dynamic
// load); any other error is fatal to the export.
type Factory interface {
	New() (Backend, error)
}

// Exporter composes documents against backends from a Factory. Each
// export acquires its own backend instance, so concurrent exports never
// share mutable state.
type Exporter struct {
	factory      Factory
	retryBudget  time.Duration
	pollInterval time.Duration
}

const (
	defaultRetryBudget  = 3 * time.Second
	defaultPollInterval = 100 * time.Millisecond
)

func NewExporter(factory Factory) *Exporter {
	return &Exporter{
		factory:      factory,
		retryBudget:  defaultRetryBudget,
		pollInterval: defaultPollInterval,
	}
}

// acquire blocks until the factory yields a backend, polling while it
// reports ErrNotReady. Budget exhaustion surfaces ErrBackendUnavailable.
func (e *Exporter) acquire(ctx context.Context) (Backend, error) {
	deadline := time.Now().Add(e.retryBudget)
	for {
		b, err := e.factory.New()
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrNotReady) {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, ErrBackendUnavailable
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.pollInterval):
		}
	}
}
