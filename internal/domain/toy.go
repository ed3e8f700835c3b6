package domain

import "time"

// Toy is the domain model for a toy available in the store.
type Toy struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
