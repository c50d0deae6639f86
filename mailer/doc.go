// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mailer sends submission confirmation emails with the QR code
attached.

Credentials come from config (SENDER_EMAIL / SENDER_PASSWORD); without
them the mailer is disabled and sends are skipped with a log line at
startup. Sending is always best-effort from the caller's perspective: a
failed email never fails a submission.

	m := mailer.New(cfg)
	if m.Configured() {
		err := m.SendSubmissionConfirmation(email, record, qrPNG)
	}
*/
package mailer
