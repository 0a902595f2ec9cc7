package entities

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationEmail    NotificationType = "email"
	NotificationWhatsapp NotificationType = "whatsapp"
)

type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// NotificationLogEntry records a single dispatch attempt. Entries are
// append-only: a failed attempt still produces one.
type NotificationLogEntry struct {
	ID               uuid.UUID
	OrderID          int64
	NotificationType NotificationType
	Status           NotificationStatus
	RecipientEmail   string
	RecipientPhone   string
	ErrorMessage     string
	CreatedAt        time.Time
}

// StatusView is the customer-facing slice of an order served by the public
// status lookup. It is what gets cached.
type StatusView struct {
	Bonnummer string
	Status    Status
	Message   string
}

func (v *StatusView) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *StatusView) Unmarshal(data []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(v)
}
