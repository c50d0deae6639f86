// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pdfexport

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// fpdfBackend adapts github.com/go-pdf/fpdf to the Backend contract.
// One instance per document; fpdf state is not safe to share.
type fpdfBackend struct {
	pdf  *fpdf.Fpdf
	nimg int
}

func newFpdfBackend() *fpdfBackend {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	// Composers manage pagination themselves
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont(fontFamily, "", 10)
	return &fpdfBackend{pdf: pdf}
}

func (f *fpdfBackend) PageSize() (float64, float64) {
	return f.pdf.GetPageSize()
}

func (f *fpdfBackend) AddPage() {
	f.pdf.AddPage()
}

func (f *fpdfBackend) SetFillColor(c RGB) {
	f.pdf.SetFillColor(c.R, c.G, c.B)
}

func (f *fpdfBackend) SetDrawColor(c RGB) {
	f.pdf.SetDrawColor(c.R, c.G, c.B)
}

func (f *fpdfBackend) SetTextColor(c RGB) {
	f.pdf.SetTextColor(c.R, c.G, c.B)
}

func (f *fpdfBackend) SetLineWidth(w float64) {
	f.pdf.SetLineWidth(w)
}

func (f *fpdfBackend) SetFont(size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	f.pdf.SetFont(fontFamily, style, size)
}

func (f *fpdfBackend) Rect(x, y, w, h float64, fill bool) {
	f.pdf.Rect(x, y, w, h, rectStyle(fill))
}

func (f *fpdfBackend) RoundedRect(x, y, w, h, radius float64) {
	f.pdf.RoundedRect(x, y, w, h, radius, "1234", "F")
}

func (f *fpdfBackend) Line(x1, y1, x2, y2 float64) {
	f.pdf.Line(x1, y1, x2, y2)
}

func (f *fpdfBackend) Text(x, y float64, s string, align Align) {
	switch align {
	case AlignCenter:
		x -= f.pdf.GetStringWidth(s) / 2
	case AlignRight:
		x -= f.pdf.GetStringWidth(s)
	}
	f.pdf.Text(x, y, s)
}

func (f *fpdfBackend) RotatedText(x, y float64, s string, angle float64) {
	f.pdf.TransformBegin()
	f.pdf.TransformRotate(angle, x, y)
	f.pdf.Text(x-f.pdf.GetStringWidth(s)/2, y, s)
	f.pdf.TransformEnd()
}

func (f *fpdfBackend) WrapText(s string, width float64) []string {
	return f.pdf.SplitText(s, width)
}

func (f *fpdfBackend) EmbedImage(img []byte, x, y, w, h float64) error {
	// Validate before handing bytes to fpdf: a failed registration
	// would poison the whole document (fpdf errors are sticky).
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return fmt.Errorf("invalid image data: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("invalid image data: empty %s image", format)
	}
	var imageType string
	switch format {
	case "png":
		imageType = "PNG"
	case "jpeg":
		imageType = "JPG"
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}

	f.nimg++
	name := fmt.Sprintf("embedded-%d", f.nimg)
	opts := fpdf.ImageOptions{ImageType: imageType}
	f.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if f.pdf.Err() {
		return fmt.Errorf("image registration failed: %w", f.pdf.Error())
	}
	f.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

func (f *fpdfBackend) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FpdfFactory produces fpdf-backed backends. fpdf is pure Go with no
// deferred loading, so New is always ready.
type FpdfFactory struct{}

func (FpdfFactory) New() (Backend, error) {
	return newFpdfBackend(), nil
}

func rectStyle(fill bool) string {
	if fill {
		return "F"
	}
	return "D"
}
