package dto

import (
	"time"

	"github.com/soklet/toystore-app-sub001/internal/domain"
)

// ToyRequest is the payload for creating or updating a toy.
type ToyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Currency    string `json:"currency"`
}

// ToyResponse is the public shape of a toy.
type ToyResponse struct {
	ID          string    `json:"toyId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewToyResponse maps a domain toy.
func NewToyResponse(toy *domain.Toy) ToyResponse {
	return ToyResponse{
		ID:          toy.ID,
		Name:        toy.Name,
		Description: toy.Description,
		PriceCents:  toy.PriceCents,
		Currency:    toy.Currency,
		CreatedAt:   toy.CreatedAt,
		UpdatedAt:   toy.UpdatedAt,
	}
}

// NewToyListResponse maps a slice of toys.
func NewToyListResponse(toys []*domain.Toy) []ToyResponse {
	out := make([]ToyResponse, 0, len(toys))
	for _, toy := range toys {
		out = append(out, NewToyResponse(toy))
	}
	return out
}
