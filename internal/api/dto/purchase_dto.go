package dto

import (
	"time"

	"github.com/soklet/toystore-app-sub001/internal/domain"
)

// PurchaseRequest is the payload for buying a toy.
type PurchaseRequest struct {
	ToyID                string `json:"toyId"`
	CreditCardNumber     string `json:"creditCardNumber"`
	CreditCardExpiration string `json:"creditCardExpiration"`
}

// PurchaseResponse is the public shape of a purchase.
type PurchaseResponse struct {
	ID                   string    `json:"purchaseId"`
	AccountID            string    `json:"accountId"`
	ToyID                string    `json:"toyId"`
	PriceCents           int64     `json:"priceCents"`
	Currency             string    `json:"currency"`
	PaymentTransactionID string    `json:"paymentTransactionId"`
	CreatedAt            time.Time `json:"createdAt"`
}

// NewPurchaseResponse maps a domain purchase.
func NewPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:                   p.ID,
		AccountID:            p.AccountID,
		ToyID:                p.ToyID,
		PriceCents:           p.PriceCents,
		Currency:             p.Currency,
		PaymentTransactionID: p.PaymentTransactionID,
		CreatedAt:            p.CreatedAt,
	}
}

// NewPurchaseListResponse maps a slice of purchases.
func NewPurchaseListResponse(purchases []*domain.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, NewPurchaseResponse(p))
	}
	return out
}
