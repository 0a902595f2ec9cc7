package entities

import (
	"errors"
	"time"
)

// Status is a customer-visible order milestone. The labels are the literal
// strings shown to customers, not symbolic codes.
type Status string

const (
	StatusPending      Status = "pending"
	StatusNew          Status = "Nieuw"
	StatusProcessing   Status = "Bestelling in verwerking"
	StatusProcessed    Status = "Bestelling verwerkt"
	StatusInProduction Status = "Bestelling in productie"
	StatusReady        Status = "Bestelling is gereed"
	StatusDeliveryCall Status = "U wordt gebeld voor levering"
)

var statusMessages = map[Status]string{
	StatusPending:      "Uw bestelling is ontvangen.",
	StatusNew:          "Uw bestelling is aangemaakt.",
	StatusProcessing:   "Uw bestelling wordt verwerkt.",
	StatusProcessed:    "Uw bestelling is verwerkt.",
	StatusInProduction: "Uw bestelling is in productie.",
	StatusReady:        "Uw bestelling is gereed.",
	StatusDeliveryCall: "U wordt binnenkort gebeld om de levering in te plannen.",
}

func (s Status) Known() bool {
	_, ok := statusMessages[s]
	return ok
}

// Message returns the customer-facing text for the status. Unknown statuses
// pass through as their raw string so dispatch never fails on them.
func (s Status) Message() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return string(s)
}

type Order struct {
	ID        int64
	Bonnummer string

	CustomerName string
	Email        string
	Phone        string
	Address      string
	ZIP          string
	City         string

	// AmountCents is the order total in eurocents.
	AmountCents int64

	Status         Status
	ProductType    string
	Description    string
	ProductDetails string

	ClientNote           string
	NoteFromEntrepreneur string

	NotifyByEmail     bool
	NotificationEmail string
	NotifyByWhatsapp  bool
	NotificationPhone string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderUpdate is a partial update; nil fields are left untouched. A non-nil
// Status marks the status field as present in the request, which is what
// triggers notification dispatch, even when the value is unchanged.
type OrderUpdate struct {
	CustomerName *string
	Email        *string
	Phone        *string
	Address      *string
	ZIP          *string
	City         *string

	AmountCents *int64

	Status         *Status
	ProductType    *string
	Description    *string
	ProductDetails *string

	ClientNote           *string
	NoteFromEntrepreneur *string

	NotifyByEmail     *bool
	NotificationEmail *string
	NotifyByWhatsapp  *bool
	NotificationPhone *string
}

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrBonnummerTaken = errors.New("bonnummer already assigned")
)

// TransitionPolicy decides whether an order may move from one status to
// another. The default policy allows every transition: the statuses model
// customer-visible milestones, not a strict workflow, and staff must be able
// to correct or skip states.
type TransitionPolicy interface {
	Allow(from, to Status) error
}

type AllowAllPolicy struct{}

func (AllowAllPolicy) Allow(from, to Status) error { return nil }
