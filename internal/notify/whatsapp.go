package notify

import (
	"context"
	"log/slog"
)

// WhatsappStub logs outgoing messages instead of delivering them. It honors
// the MessageSender contract so a real provider can replace it without
// touching the dispatcher.
type WhatsappStub struct {
	logger *slog.Logger
}

func NewWhatsappStub(logger *slog.Logger) *WhatsappStub {
	return &WhatsappStub{logger: logger.With(slog.String("channel", "whatsapp"))}
}

func (s *WhatsappStub) Send(ctx context.Context, to, text string) error {
	s.logger.InfoContext(ctx, "whatsapp message sent", slog.String("to", to), slog.String("text", text))
	return nil
}
