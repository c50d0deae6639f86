// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package qrgen renders cryptographic submission data as QR code images.

The QR content is the JSON document {payload, signature, version} — the
same structure clients later present for verification. Codes use the
highest error-correction level so they survive printing and rescanning.

	png, err := qrgen.EncodePNG(qrData)
	b64, err := qrgen.EncodeBase64(qrData)
*/
package qrgen
