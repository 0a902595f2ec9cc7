package repo

import (
	"database/sql"
	"time"

	"github.com/raamdecor/backoffice/internal/entities"

	"github.com/google/uuid"
)

type Order struct {
	ID        int64  `db:"id"`
	Bonnummer string `db:"bonnummer"`

	CustomerName string         `db:"customer_name"`
	Email        string         `db:"email"`
	Phone        sql.NullString `db:"phone"`
	Address      sql.NullString `db:"address"`
	ZIP          sql.NullString `db:"zip"`
	City         sql.NullString `db:"city"`

	AmountCents int64 `db:"amount_cents"`

	Status         string         `db:"status"`
	ProductType    sql.NullString `db:"product_type"`
	Description    sql.NullString `db:"description"`
	ProductDetails sql.NullString `db:"product_details"`

	ClientNote           sql.NullString `db:"client_note"`
	NoteFromEntrepreneur sql.NullString `db:"note_from_entrepreneur"`

	NotifyByEmail     bool           `db:"notify_by_email"`
	NotificationEmail sql.NullString `db:"notification_email"`
	NotifyByWhatsapp  bool           `db:"notify_by_whatsapp"`
	NotificationPhone sql.NullString `db:"notification_phone"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type NotificationLog struct {
	ID               uuid.UUID      `db:"id"`
	OrderID          int64          `db:"order_id"`
	NotificationType string         `db:"notification_type"`
	Status           string         `db:"status"`
	RecipientEmail   sql.NullString `db:"recipient_email"`
	RecipientPhone   sql.NullString `db:"recipient_phone"`
	ErrorMessage     sql.NullString `db:"error_message"`
	CreatedAt        time.Time      `db:"created_at"`
}

func OrderToEntity(o Order) entities.Order {
	return entities.Order{
		ID:        o.ID,
		Bonnummer: o.Bonnummer,

		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        nullStringToString(o.Phone),
		Address:      nullStringToString(o.Address),
		ZIP:          nullStringToString(o.ZIP),
		City:         nullStringToString(o.City),

		AmountCents: o.AmountCents,

		Status:         entities.Status(o.Status),
		ProductType:    nullStringToString(o.ProductType),
		Description:    nullStringToString(o.Description),
		ProductDetails: nullStringToString(o.ProductDetails),

		ClientNote:           nullStringToString(o.ClientNote),
		NoteFromEntrepreneur: nullStringToString(o.NoteFromEntrepreneur),

		NotifyByEmail:     o.NotifyByEmail,
		NotificationEmail: nullStringToString(o.NotificationEmail),
		NotifyByWhatsapp:  o.NotifyByWhatsapp,
		NotificationPhone: nullStringToString(o.NotificationPhone),

		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func NotificationLogToEntity(l NotificationLog) entities.NotificationLogEntry {
	return entities.NotificationLogEntry{
		ID:               l.ID,
		OrderID:          l.OrderID,
		NotificationType: entities.NotificationType(l.NotificationType),
		Status:           entities.NotificationStatus(l.Status),
		RecipientEmail:   nullStringToString(l.RecipientEmail),
		RecipientPhone:   nullStringToString(l.RecipientPhone),
		ErrorMessage:     nullStringToString(l.ErrorMessage),
		CreatedAt:        l.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
