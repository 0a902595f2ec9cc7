package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/raamdecor/backoffice/internal/entities"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const emailSubject = "Update over uw bestelling"

// EmailSender sends a status mail. Any returned error counts as a failed
// attempt.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MessageSender is the messaging-channel equivalent; the current
// implementation is a logging stub, a real provider slots in behind the same
// contract.
type MessageSender interface {
	Send(ctx context.Context, to, text string) error
}

type LogStore interface {
	CreateNotificationLog(ctx context.Context, e entities.NotificationLogEntry) error
}

// Dispatcher fans a status change out to every enabled channel. Channel
// failures are logged, never returned: notification is best-effort and must
// not fail the order update that triggered it.
type Dispatcher struct {
	logger      *slog.Logger
	logs        LogStore
	email       EmailSender
	messenger   MessageSender
	sendTimeout time.Duration
}

func NewDispatcher(logger *slog.Logger, logs LogStore, email EmailSender, messenger MessageSender, sendTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		logger:      logger.With(slog.String("component", "dispatcher")),
		logs:        logs,
		email:       email,
		messenger:   messenger,
		sendTimeout: sendTimeout,
	}
}

// Dispatch notifies the customer about status over each channel that is both
// enabled and has a contact address. The channels are independent, so they
// run concurrently; each attempt writes its own log entry. The group carries
// no shared context: one channel failing must not cancel the other.
func (d *Dispatcher) Dispatch(ctx context.Context, order entities.Order, status entities.Status) {
	message := status.Message()

	var g errgroup.Group

	if order.NotifyByEmail && order.NotificationEmail != "" {
		g.Go(func() error {
			return d.sendEmail(ctx, order, message)
		})
	}

	if order.NotifyByWhatsapp && order.NotificationPhone != "" {
		g.Go(func() error {
			return d.sendWhatsapp(ctx, order, message)
		})
	}

	if err := g.Wait(); err != nil {
		d.logger.Warn("notification dispatch incomplete",
			slog.Int64("order_id", order.ID), slog.Any("error", err))
	}
}

func (d *Dispatcher) sendEmail(ctx context.Context, order entities.Order, message string) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	body := fmt.Sprintf(
		"Beste %s,\n\n%s\n\nBonnummer: %s\n\nMet vriendelijke groet,\nRaamdecor",
		order.CustomerName, message, order.Bonnummer,
	)

	err := d.email.Send(sendCtx, order.NotificationEmail, emailSubject, body)

	entry := entities.NotificationLogEntry{
		ID:               uuid.New(),
		OrderID:          order.ID,
		NotificationType: entities.NotificationEmail,
		Status:           entities.NotificationSent,
		RecipientEmail:   order.NotificationEmail,
	}
	if err != nil {
		entry.Status = entities.NotificationFailed
		entry.ErrorMessage = err.Error()
	}
	d.writeLog(ctx, entry)

	return err
}

func (d *Dispatcher) sendWhatsapp(ctx context.Context, order entities.Order, message string) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	text := fmt.Sprintf("%s (bonnummer %s)", message, order.Bonnummer)

	err := d.messenger.Send(sendCtx, order.NotificationPhone, text)

	entry := entities.NotificationLogEntry{
		ID:               uuid.New(),
		OrderID:          order.ID,
		NotificationType: entities.NotificationWhatsapp,
		Status:           entities.NotificationSent,
		RecipientPhone:   order.NotificationPhone,
	}
	if err != nil {
		entry.Status = entities.NotificationFailed
		entry.ErrorMessage = err.Error()
	}
	d.writeLog(ctx, entry)

	return err
}

func (d *Dispatcher) writeLog(ctx context.Context, entry entities.NotificationLogEntry) {
	if entry.Status == entities.NotificationFailed {
		d.logger.Error("notification attempt failed",
			slog.Int64("order_id", entry.OrderID),
			slog.String("channel", string(entry.NotificationType)),
			slog.String("error", entry.ErrorMessage),
		)
	}
	notificationsTotal.WithLabelValues(string(entry.NotificationType), string(entry.Status)).Inc()

	if err := d.logs.CreateNotificationLog(ctx, entry); err != nil {
		d.logger.Error("failed to write notification log",
			slog.Int64("order_id", entry.OrderID), slog.Any("error", err))
	}
}
