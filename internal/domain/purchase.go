package domain

import "time"

// Purchase records a completed toy purchase. PaymentTransactionID is the
// opaque identifier returned by the payment gateway.
type Purchase struct {
	ID                   string
	AccountID            string
	ToyID                string
	PriceCents           int64
	Currency             string
	PaymentTransactionID string
	CreatedAt            time.Time
}
