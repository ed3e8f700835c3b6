package domain

import "time"

// RoleID is the coarse permission tier assigned to an account.
type RoleID string

const (
	RoleAdministrator RoleID = "ADMINISTRATOR"
	RoleEmployee      RoleID = "EMPLOYEE"
	RoleCustomer      RoleID = "CUSTOMER"
)

// Valid reports whether the role is one of the known tiers.
func (r RoleID) Valid() bool {
	switch r {
	case RoleAdministrator, RoleEmployee, RoleCustomer:
		return true
	}
	return false
}

// Account is the domain model for a registered account.
// PasswordHash is self-describing: it embeds the algorithm, iteration count
// and salt alongside the digest, so historical hashes stay verifiable after
// the configured iteration count changes.
type Account struct {
	ID           string
	Name         string
	EmailAddress string
	RoleID       RoleID
	PasswordHash string
	Locale       string
	TimeZone     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
