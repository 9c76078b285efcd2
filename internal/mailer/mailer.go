package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is returned when required mail settings are absent.
var ErrNotConfigured = errors.New("mail relay not configured")

// Config holds the outbound relay settings.
type Config struct {
	Transport string
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	To        []string
}

// Validate checks that every setting needed to send is present. It never
// touches the network.
func (c Config) Validate() error {
	var missing []string
	if c.Transport != "gmail" {
		if c.Host == "" {
			missing = append(missing, "SMTP_HOST")
		}
		if c.Port == 0 {
			missing = append(missing, "SMTP_PORT")
		}
		if c.Username == "" {
			missing = append(missing, "SMTP_USERNAME")
		}
		if c.Password == "" {
			missing = append(missing, "SMTP_PASSWORD")
		}
	}
	if c.From == "" {
		missing = append(missing, "MAIL_FROM")
	}
	if len(c.To) == 0 {
		missing = append(missing, "LEAD_RECIPIENTS")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// Message is one outbound email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Sender abstracts the transport so tests can substitute it.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

func buildMessage(msg Message) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", msg.From))
	b.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ",")))
	if msg.ReplyTo != "" {
		b.WriteString(fmt.Sprintf("Reply-To: %s\r\n", msg.ReplyTo))
	}
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeader(msg.Subject)))
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Body)
	return b.String()
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
