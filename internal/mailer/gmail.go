package mailer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

// GmailSender sends through the Gmail API as the authorized account.
type GmailSender struct {
	svc *gmail.Service
}

func NewGmailSender(svc *gmail.Service) *GmailSender {
	return &GmailSender{svc: svc}
}

func (g *GmailSender) Send(ctx context.Context, msg Message) error {
	if g.svc == nil {
		return fmt.Errorf("%w: gmail client unavailable", ErrNotConfigured)
	}
	raw := base64.URLEncoding.EncodeToString([]byte(buildMessage(msg)))
	_, err := g.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && (gErr.Code == 401 || gErr.Code == 403) {
			return fmt.Errorf("%w: gmail rejected credentials (%d)", ErrNotConfigured, gErr.Code)
		}
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}
