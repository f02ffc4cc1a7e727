// Package mail sends chapter emails over plain SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"serial-story-subscription/internal/config"
	"serial-story-subscription/internal/domain/ports/adapter"
)

var _ adapter.Mailer = (*SMTPMailer)(nil)

type SMTPMailer struct {
	addr   string
	auth   smtp.Auth
	sender string
	log    *zerolog.Logger
}

func NewSMTPMailer(cfg *config.MailConfig, logger *zerolog.Logger) *SMTPMailer {
	l := logger.With().Str("component", "SMTPMailer").Logger()
	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	sender := cfg.Sender
	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", cfg.Host)
	}
	return &SMTPMailer{
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:   auth,
		sender: sender,
		log:    &l,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if to == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", m.sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			htmlBody,
	)

	// net/smtp has no context support; honor cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := smtp.SendMail(m.addr, m.auth, m.sender, []string{to}, msg); err != nil {
		m.log.Error().Err(err).Str("to", to).Msg("smtp send failed")
		return err
	}
	m.log.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
