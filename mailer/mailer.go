// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"github.com/cryptoqr/cryptoqr/cliparse"
	"github.com/cryptoqr/cryptoqr/models"
)

// Mailer sends submission confirmation emails over SMTP.
type Mailer struct {
	server   string
	port     int
	sender   string
	password string
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New builds a Mailer from config. When credentials are missing the
// mailer is disabled: Configured reports false and sends are skipped.
func New(cfg cliparse.Config) *Mailer {
	m := &Mailer{
		server:   cfg.SMTPServer,
		port:     cfg.SMTPPort,
		sender:   cfg.SenderEmail,
		password: cfg.SenderPassword,
		send:     smtp.SendMail,
	}
	if !m.Configured() {
		slog.Warn("email notifications disabled (no credentials configured)")
	}
	return m
}

// Configured reports whether SMTP credentials are present.
func (m *Mailer) Configured() bool {
	return m.sender != "" && m.password != ""
}

// SendSubmissionConfirmation emails the submitter their QR code and the
// submission metadata as a JSON attachment.
func (m *Mailer) SendSubmissionConfirmation(recipient string, sub models.SubmissionRecord, qrPNG []byte) error {
	if !m.Configured() {
		return fmt.Errorf("mailer not configured")
	}

	msg, err := m.buildMessage(recipient, sub, qrPNG)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.server, m.port)
	auth := smtp.PlainAuth("", m.sender, m.password, m.server)
	if err := m.send(addr, auth, m.sender, []string{recipient}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *Mailer) buildMessage(recipient string, sub models.SubmissionRecord, qrPNG []byte) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: CryptoQR <%s>\r\n", m.sender)
	fmt.Fprintf(&buf, "To: %s\r\n", recipient)
	fmt.Fprintf(&buf, "Subject: Submission Confirmed - %s\r\n", sub.SubmissionID)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", mw.Boundary())

	// Plain-text body
	body, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(body, "Your submission has been recorded.\r\n\r\n")
	fmt.Fprintf(body, "Submission ID: %s\r\n", sub.SubmissionID)
	fmt.Fprintf(body, "Competition:   %s\r\n", sub.CompetitionID)
	fmt.Fprintf(body, "Submitted:     %s\r\n", sub.Timestamp.Format(time.RFC1123))
	fmt.Fprintf(body, "Content hash:  %s\r\n\r\n", sub.ContentHash)
	fmt.Fprintf(body, "Keep the attached QR code - it is required for verification.\r\n")

	// QR image attachment
	if len(qrPNG) > 0 {
		img, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"image/png; name=qr-code.png"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {`attachment; filename="qr-code.png"`},
		})
		if err != nil {
			return nil, err
		}
		enc := base64.NewEncoder(base64.StdEncoding, img)
		enc.Write(qrPNG)
		enc.Close()
	}

	// Submission metadata as JSON attachment
	meta, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":        {"application/json; name=submission.json"},
		"Content-Disposition": {`attachment; filename="submission.json"`},
	})
	if err != nil {
		return nil, err
	}
	metaDoc := map[string]any{
		"submission_id":  sub.SubmissionID,
		"competition_id": sub.CompetitionID,
		"content_hash":   sub.ContentHash,
		"timestamp":      sub.Timestamp.Format(time.RFC3339),
	}
	if err := json.NewEncoder(meta).Encode(metaDoc); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
