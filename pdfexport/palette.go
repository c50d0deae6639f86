// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pdfexport

// RGB is an 8-bit-per-channel color triple.
type RGB struct {
	R, G, B int
}

var (
	white = RGB{255, 255, 255}

	// Low-contrast tints for watermarks and the failure block background
	tintSuccess = RGB{209, 235, 216}
	tintFailure = RGB{246, 214, 214}
	tintPanel   = RGB{252, 238, 238}
)

// palette is the fixed set of named colors for one document type.
// Selected once per export, never mutated during composition.
type palette struct {
	primary       RGB
	success       RGB
	failure       RGB
	textPrimary   RGB
	textSecondary RGB
}

var reportPalette = palette{
	primary:       RGB{37, 78, 173},
	success:       RGB{22, 140, 72},
	failure:       RGB{195, 43, 43},
	textPrimary:   RGB{33, 37, 41},
	textSecondary: RGB{108, 117, 125},
}

// Certificates are decorative: deeper primary, same text colors.
var certificatePalette = palette{
	primary:       RGB{26, 54, 126},
	success:       RGB{22, 140, 72},
	failure:       RGB{195, 43, 43},
	textPrimary:   RGB{33, 37, 41},
	textSecondary: RGB{108, 117, 125},
}
