// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package qrgen

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/cryptoqr/cryptoqr/models"
)

// Rendered QR edge length in pixels. Sized for crisp scanning from both
// screens and 300dpi print.
const imageSize = 512

// EncodePNG renders QR data as a PNG image. Highest error correction so
// codes survive print-scan round trips and partial occlusion.
func EncodePNG(data models.QRData) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Highest, imageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// EncodeBase64 renders QR data as a base64 PNG string for JSON responses.
func EncodeBase64(data models.QRData) (string, error) {
	png, err := EncodePNG(data)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
