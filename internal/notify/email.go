package notify

import (
	"context"
	"fmt"

	"github.com/raamdecor/backoffice/internal/config"

	"github.com/mailgun/mailgun-go/v4"
)

// MailgunChannel delivers status mails through the Mailgun API.
type MailgunChannel struct {
	mg     mailgun.Mailgun
	sender string
}

func NewMailgunChannel(cfg config.Notify) *MailgunChannel {
	mg := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	mg.SetAPIBase(mailgun.APIBaseEU)

	return &MailgunChannel{mg: mg, sender: cfg.Sender}
}

func (c *MailgunChannel) Send(ctx context.Context, to, subject, body string) error {
	msg := mailgun.NewMessage(c.sender, subject, body, to)

	if _, _, err := c.mg.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}
