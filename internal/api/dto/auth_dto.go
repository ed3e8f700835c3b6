package dto

import (
	"github.com/soklet/toystore-app-sub001/internal/domain"
	"github.com/soklet/toystore-app-sub001/internal/reqctx"
)

// AuthenticateRequest is the login payload.
type AuthenticateRequest struct {
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// AccountResponse is the public shape of an account.
type AccountResponse struct {
	ID           string `json:"accountId"`
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
	RoleID       string `json:"roleId"`
	Locale       string `json:"locale"`
	TimeZone     string `json:"timeZone"`
}

// AuthenticateResponse is the login result.
type AuthenticateResponse struct {
	AuthenticationToken string          `json:"authenticationToken"`
	Account             AccountResponse `json:"account"`
}

// StreamTokenResponse carries a short-lived event-stream handshake token.
type StreamTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// NewAccountResponse maps a domain account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:           account.ID,
		Name:         account.Name,
		EmailAddress: account.EmailAddress,
		RoleID:       string(account.RoleID),
		Locale:       account.Locale,
		TimeZone:     account.TimeZone,
	}
}

// ContextResponse echoes the ambient request context, mostly for clients to
// confirm which locale and time zone their responses will be formatted in.
type ContextResponse struct {
	Account  *AccountResponse `json:"account,omitempty"`
	Locale   string           `json:"locale"`
	TimeZone string           `json:"timeZone"`
}

// NewContextResponse maps a request context.
func NewContextResponse(rc *reqctx.RequestContext) ContextResponse {
	resp := ContextResponse{
		Locale:   rc.Locale().String(),
		TimeZone: rc.TimeZone().String(),
	}
	if rc.Authenticated() {
		account := NewAccountResponse(rc.Account())
		resp.Account = &account
	}
	return resp
}
