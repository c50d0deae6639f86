// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pdfexport

// Document is a finalized export: the rendered bytes plus the
// deterministic download filename.
type Document struct {
	Filename string
	Data     []byte

	// ImageEmbedFailures counts images that failed to embed. Embedding
	// is recoverable: the document finalizes without the image.
	ImageEmbedFailures int
}
