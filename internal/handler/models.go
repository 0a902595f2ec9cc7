package handler

import (
	"time"

	"github.com/raamdecor/backoffice/internal/entities"
)

// Order is the admin API representation of an order
type Order struct {
	ID        int64  `json:"id"`
	Bonnummer string `json:"bonnummer"`

	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	ZIP          string `json:"zip,omitempty"`
	City         string `json:"city,omitempty"`

	AmountCents int64 `json:"amount_cents"`

	Status         string `json:"status"`
	ProductType    string `json:"product_type,omitempty"`
	Description    string `json:"description,omitempty"`
	ProductDetails string `json:"product_details,omitempty"`

	ClientNote           string `json:"client_note,omitempty"`
	NoteFromEntrepreneur string `json:"note_from_entrepreneur,omitempty"`

	NotifyByEmail     bool   `json:"notify_by_email"`
	NotificationEmail string `json:"notification_email,omitempty"`
	NotifyByWhatsapp  bool   `json:"notify_by_whatsapp"`
	NotificationPhone string `json:"notification_phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateOrderRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	ZIP          string `json:"zip,omitempty"`
	City         string `json:"city,omitempty"`

	AmountCents int64 `json:"amount_cents" validate:"gte=0"`

	ProductType    string `json:"product_type,omitempty"`
	Description    string `json:"description,omitempty"`
	ProductDetails string `json:"product_details,omitempty"`
	ClientNote     string `json:"client_note,omitempty"`

	NotifyByEmail     bool   `json:"notify_by_email"`
	NotificationEmail string `json:"notification_email,omitempty" validate:"omitempty,email"`
	NotifyByWhatsapp  bool   `json:"notify_by_whatsapp"`
	NotificationPhone string `json:"notification_phone,omitempty" validate:"omitempty,e164"`
}

// UpdateOrderRequest is a partial update. A status key in the payload, even
// with an unchanged value, re-triggers customer notification.
type UpdateOrderRequest struct {
	CustomerName *string `json:"customer_name,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	ZIP          *string `json:"zip,omitempty"`
	City         *string `json:"city,omitempty"`

	AmountCents *int64 `json:"amount_cents,omitempty" validate:"omitempty,gte=0"`

	Status         *string `json:"status,omitempty"`
	ProductType    *string `json:"product_type,omitempty"`
	Description    *string `json:"description,omitempty"`
	ProductDetails *string `json:"product_details,omitempty"`

	ClientNote           *string `json:"client_note,omitempty"`
	NoteFromEntrepreneur *string `json:"note_from_entrepreneur,omitempty"`

	NotifyByEmail     *bool   `json:"notify_by_email,omitempty"`
	NotificationEmail *string `json:"notification_email,omitempty" validate:"omitempty,email"`
	NotifyByWhatsapp  *bool   `json:"notify_by_whatsapp,omitempty"`
	NotificationPhone *string `json:"notification_phone,omitempty" validate:"omitempty,e164"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CSRFResponse struct {
	Token string `json:"token"`
}

// StatusResponse is the public, customer-facing slice of an order
type StatusResponse struct {
	Bonnummer string `json:"bonnummer"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type NotificationLog struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	RecipientEmail string    `json:"recipient_email,omitempty"`
	RecipientPhone string    `json:"recipient_phone,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PaymentEvent is the payment-completion message consumed from Kafka. A
// completed payment creates a pending order.
type PaymentEvent struct {
	PaymentID   string `json:"payment_id" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"gte=0"`

	CustomerName string `json:"customer_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	ZIP          string `json:"zip,omitempty"`
	City         string `json:"city,omitempty"`

	ProductType string `json:"product_type,omitempty"`
	Description string `json:"description,omitempty"`

	NotifyByEmail     bool   `json:"notify_by_email"`
	NotificationEmail string `json:"notification_email,omitempty" validate:"omitempty,email"`
	NotifyByWhatsapp  bool   `json:"notify_by_whatsapp"`
	NotificationPhone string `json:"notification_phone,omitempty" validate:"omitempty,e164"`
}

func OrderEntityToJSON(o entities.Order) Order {
	return Order{
		ID:        o.ID,
		Bonnummer: o.Bonnummer,

		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        o.Phone,
		Address:      o.Address,
		ZIP:          o.ZIP,
		City:         o.City,

		AmountCents: o.AmountCents,

		Status:         string(o.Status),
		ProductType:    o.ProductType,
		Description:    o.Description,
		ProductDetails: o.ProductDetails,

		ClientNote:           o.ClientNote,
		NoteFromEntrepreneur: o.NoteFromEntrepreneur,

		NotifyByEmail:     o.NotifyByEmail,
		NotificationEmail: o.NotificationEmail,
		NotifyByWhatsapp:  o.NotifyByWhatsapp,
		NotificationPhone: o.NotificationPhone,

		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func CreateRequestToEntity(req CreateOrderRequest) entities.Order {
	return entities.Order{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		ZIP:          req.ZIP,
		City:         req.City,

		AmountCents: req.AmountCents,

		ProductType:    req.ProductType,
		Description:    req.Description,
		ProductDetails: req.ProductDetails,
		ClientNote:     req.ClientNote,

		NotifyByEmail:     req.NotifyByEmail,
		NotificationEmail: req.NotificationEmail,
		NotifyByWhatsapp:  req.NotifyByWhatsapp,
		NotificationPhone: req.NotificationPhone,
	}
}

func UpdateRequestToEntity(req UpdateOrderRequest) entities.OrderUpdate {
	upd := entities.OrderUpdate{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		ZIP:          req.ZIP,
		City:         req.City,

		AmountCents: req.AmountCents,

		ProductType:    req.ProductType,
		Description:    req.Description,
		ProductDetails: req.ProductDetails,

		ClientNote:           req.ClientNote,
		NoteFromEntrepreneur: req.NoteFromEntrepreneur,

		NotifyByEmail:     req.NotifyByEmail,
		NotificationEmail: req.NotificationEmail,
		NotifyByWhatsapp:  req.NotifyByWhatsapp,
		NotificationPhone: req.NotificationPhone,
	}

	if req.Status != nil {
		status := entities.Status(*req.Status)
		upd.Status = &status
	}
	return upd
}

func NotificationLogEntityToJSON(e entities.NotificationLogEntry) NotificationLog {
	return NotificationLog{
		ID:             e.ID.String(),
		Type:           string(e.NotificationType),
		Status:         string(e.Status),
		RecipientEmail: e.RecipientEmail,
		RecipientPhone: e.RecipientPhone,
		ErrorMessage:   e.ErrorMessage,
		CreatedAt:      e.CreatedAt,
	}
}

func PaymentEventToEntity(ev PaymentEvent) entities.Order {
	return entities.Order{
		CustomerName: ev.CustomerName,
		Email:        ev.Email,
		Phone:        ev.Phone,
		Address:      ev.Address,
		ZIP:          ev.ZIP,
		City:         ev.City,

		AmountCents: ev.AmountCents,
		Status:      entities.StatusPending,

		ProductType: ev.ProductType,
		Description: ev.Description,

		NotifyByEmail:     ev.NotifyByEmail,
		NotificationEmail: ev.NotificationEmail,
		NotifyByWhatsapp:  ev.NotifyByWhatsapp,
		NotificationPhone: ev.NotificationPhone,
	}
}
