package mailer

import (
	"context"
	"fmt"
	"net/smtp"
)

// SMTPSender relays mail through an authenticated SMTP server.
type SMTPSender struct {
	addr string
	auth smtp.Auth
}

func NewSMTPSender(cfg Config) *SMTPSender {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{addr: addr, auth: auth}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := smtp.SendMail(s.addr, s.auth, msg.From, msg.To, []byte(buildMessage(msg))); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
