package events

import (
	"time"

	"github.com/soklet/toystore-app-sub001/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventToyCreated   EventType = "toy_created"
	EventToyUpdated   EventType = "toy_updated"
	EventToyDeleted   EventType = "toy_deleted"
	EventToyPurchased EventType = "toy_purchased"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	AccountID string        `json:"account_id"`
	RoleID    domain.RoleID `json:"role_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ToyPayload describes the toy affected by a create/update/delete event.
type ToyPayload struct {
	ToyID      string `json:"toy_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
}

// ToyPurchasedPayload describes a completed purchase.
type ToyPurchasedPayload struct {
	PurchaseID           string `json:"purchase_id"`
	ToyID                string `json:"toy_id"`
	PriceCents           int64  `json:"price_cents"`
	Currency             string `json:"currency"`
	PaymentTransactionID string `json:"payment_transaction_id"`
}
