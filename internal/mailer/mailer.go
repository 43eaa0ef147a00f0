package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"joywork.app/api/core/config"
)

type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a single email.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends plain text mail using PLAIN authentication.
type SMTPMailer struct {
	cfg      config.SMTPConfig
	from     *mail.Address
	sendMail sendFunc
	now      func() time.Time
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	from, err := mail.ParseAddress(cfg.From)
	if err != nil {
		return nil, fmt.Errorf("parsing SMTP_FROM: %w", err)
	}
	return &SMTPMailer{
		cfg:      cfg,
		from:     from,
		sendMail: smtp.SendMail,
		now:      time.Now,
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return fmt.Errorf("parsing recipient: %w", err)
	}

	host := m.cfg.Addr
	if h, _, err := net.SplitHostPort(m.cfg.Addr); err == nil {
		host = h
	}
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, host)

	data := m.compose(to, msg)
	if err := m.sendMail(m.cfg.Addr, auth, m.from.Address, []string{to.Address}, data); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) compose(to *mail.Address, msg Mail) []byte {
	headers := []string{
		"From: " + m.from.String(),
		"To: " + to.String(),
		"Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject),
		"Date: " + m.now().UTC().Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Transfer-Encoding: 8bit",
	}
	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\n", "\r\n")
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)
}

// LogMailer writes mail to the log instead of sending it. Used in development
// when no SMTP server is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Mail) error {
	slog.InfoContext(ctx, "mail not sent, smtp disabled",
		"to", msg.To,
		"subject", msg.Subject,
		"body_bytes", len(msg.Body))
	return nil
}
