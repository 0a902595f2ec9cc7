package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/raamdecor/backoffice/internal/entities"
	"github.com/raamdecor/backoffice/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emailCall struct {
	to      string
	subject string
	body    string
}

type fakeEmail struct {
	err   error
	delay time.Duration

	mu    sync.Mutex
	calls []emailCall
}

func (f *fakeEmail) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	f.calls = append(f.calls, emailCall{to: to, subject: subject, body: body})
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

type fakeMessenger struct {
	err error

	mu    sync.Mutex
	calls []string
}

func (f *fakeMessenger) Send(ctx context.Context, to, text string) error {
	f.mu.Lock()
	f.calls = append(f.calls, to)
	f.mu.Unlock()
	return f.err
}

type memLog struct {
	mu      sync.Mutex
	entries []entities.NotificationLogEntry
}

func (l *memLog) CreateNotificationLog(ctx context.Context, e entities.NotificationLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	return nil
}

func (l *memLog) byType(typ entities.NotificationType) []entities.NotificationLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []entities.NotificationLogEntry
	for _, e := range l.entries {
		if e.NotificationType == typ {
			out = append(out, e)
		}
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_Dispatch(t *testing.T) {
	baseOrder := entities.Order{
		ID:                1,
		Bonnummer:         "B260901-AB12CD",
		CustomerName:      "J. de Vries",
		NotifyByEmail:     true,
		NotificationEmail: "a@b.com",
		NotifyByWhatsapp:  true,
		NotificationPhone: "+31612345678",
	}

	t.Run("both channels enabled produce two entries", func(t *testing.T) {
		email := &fakeEmail{}
		messenger := &fakeMessenger{}
		logs := &memLog{}

		d := notify.NewDispatcher(testLogger(), logs, email, messenger, time.Second)
		d.Dispatch(context.Background(), baseOrder, entities.StatusReady)

		require.Len(t, logs.entries, 2)
		emailEntries := logs.byType(entities.NotificationEmail)
		require.Len(t, emailEntries, 1)
		assert.Equal(t, entities.NotificationSent, emailEntries[0].Status)
		assert.Equal(t, "a@b.com", emailEntries[0].RecipientEmail)

		waEntries := logs.byType(entities.NotificationWhatsapp)
		require.Len(t, waEntries, 1)
		assert.Equal(t, entities.NotificationSent, waEntries[0].Status)
		assert.Equal(t, "+31612345678", waEntries[0].RecipientPhone)
	})

	t.Run("email only produces one entry", func(t *testing.T) {
		order := baseOrder
		order.NotifyByWhatsapp = false
		order.NotificationPhone = ""

		email := &fakeEmail{}
		messenger := &fakeMessenger{}
		logs := &memLog{}

		d := notify.NewDispatcher(testLogger(), logs, email, messenger, time.Second)
		d.Dispatch(context.Background(), order, entities.StatusProcessing)

		require.Len(t, logs.entries, 1)
		assert.Equal(t, entities.NotificationEmail, logs.entries[0].NotificationType)
		assert.Equal(t, entities.NotificationSent, logs.entries[0].Status)
		assert.Empty(t, messenger.calls)
	})

	t.Run("empty contact suppresses send despite enabled flag", func(t *testing.T) {
		order := baseOrder
		order.NotificationEmail = ""
		order.NotifyByWhatsapp = false

		email := &fakeEmail{}
		logs := &memLog{}

		d := notify.NewDispatcher(testLogger(), logs, email, &fakeMessenger{}, time.Second)
		d.Dispatch(context.Background(), order, entities.StatusReady)

		assert.Empty(t, logs.entries)
		assert.Empty(t, email.calls)
	})

	t.Run("failing email does not block whatsapp", func(t *testing.T) {
		email := &fakeEmail{err: errors.New("mailgun rejected")}
		messenger := &fakeMessenger{}
		logs := &memLog{}

		d := notify.NewDispatcher(testLogger(), logs, email, messenger, time.Second)
		d.Dispatch(context.Background(), baseOrder, entities.StatusReady)

		require.Len(t, logs.entries, 2)

		emailEntries := logs.byType(entities.NotificationEmail)
		require.Len(t, emailEntries, 1)
		assert.Equal(t, entities.NotificationFailed, emailEntries[0].Status)
		assert.Contains(t, emailEntries[0].ErrorMessage, "mailgun rejected")

		waEntries := logs.byType(entities.NotificationWhatsapp)
		require.Len(t, waEntries, 1)
		assert.Equal(t, entities.NotificationSent, waEntries[0].Status)
	})

	t.Run("failing whatsapp does not block email", func(t *testing.T) {
		email := &fakeEmail{}
		messenger := &fakeMessenger{err: errors.New("provider down")}
		logs := &memLog{}

		d := notify.NewDispatcher(testLogger(), logs, email, messenger, time.Second)
		d.Dispatch(context.Background(), baseOrder, entities.StatusInProduction)

		require.Len(t, logs.entries, 2)
		assert.Equal(t, entities.NotificationSent, logs.byType(entities.NotificationEmail)[0].Status)

		waEntries := logs.byType(entities.NotificationWhatsapp)
		assert.Equal(t, entities.NotificationFailed, waEntries[0].Status)
		assert.Contains(t, waEntries[0].ErrorMessage, "provider down")
	})

	t.Run("hung transport counts as failed attempt", func(t *testing.T) {
		order := baseOrder
		order.NotifyByWhatsapp = false

		email := &fakeEmail{delay: 200 * time.Millisecond}
		logs := &memLog{}

		d := notify.NewDispatcher(testLogger(), logs, email, &fakeMessenger{}, 10*time.Millisecond)
		d.Dispatch(context.Background(), order, entities.StatusReady)

		require.Len(t, logs.entries, 1)
		assert.Equal(t, entities.NotificationFailed, logs.entries[0].Status)
		assert.Contains(t, logs.entries[0].ErrorMessage, "context deadline exceeded")
	})

	t.Run("unknown status is sent as its raw string", func(t *testing.T) {
		order := baseOrder
		order.NotifyByWhatsapp = false

		email := &fakeEmail{}
		logs := &memLog{}

		d := notify.NewDispatcher(testLogger(), logs, email, &fakeMessenger{}, time.Second)
		d.Dispatch(context.Background(), order, entities.Status("Speciale afspraak gemaakt"))

		require.Len(t, email.calls, 1)
		assert.Contains(t, email.calls[0].body, "Speciale afspraak gemaakt")
		assert.Contains(t, email.calls[0].body, order.Bonnummer)
	})
}
