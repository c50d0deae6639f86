// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pdfexport

// cursor is the running vertical offset used to stack content blocks
// without overlap. It only moves down; reset exists solely for page
// breaks, which start a fresh page-local offset.
type cursor struct {
	y float64
}

func newCursor(y float64) *cursor {
	return &cursor{y: y}
}

func (c *cursor) pos() float64 {
	return c.y
}

// advance moves the cursor down by dy. Negative amounts are ignored;
// blocks never reclaim space above themselves.
func (c *cursor) advance(dy float64) {
	if dy < 0 {
		return
	}
	c.y += dy
}

// reset rebases the cursor after a page break.
func (c *cursor) reset(y float64) {
	c.y = y
}
