package domain

import "time"

// TokenAudience declares the purpose a token was minted for. A token is only
// accepted by endpoints that require its declared audience.
type TokenAudience string

const (
	// TokenAudienceAPI marks a general bearer token for API calls.
	TokenAudienceAPI TokenAudience = "API"
	// TokenAudienceSSE marks a narrow token usable only for the
	// event-stream handshake.
	TokenAudienceSSE TokenAudience = "SSE"
)

// Valid reports whether the audience is a known value.
func (a TokenAudience) Valid() bool {
	return a == TokenAudienceAPI || a == TokenAudienceSSE
}

// TokenScope is a narrow capability grant carried by a token, checked in
// addition to role-based policy.
type TokenScope string

// ScopeSSEHandshake permits opening an event-stream connection.
const ScopeSSEHandshake TokenScope = "SSE_HANDSHAKE"

// AccessToken is the signed, time-bounded credential asserting account
// identity, audience and scopes. It is a value object: immutable once
// constructed, never persisted server-side, invalidated only by expiry.
type AccessToken struct {
	AccountID string
	Audience  TokenAudience
	Scopes    []TokenScope
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasScope reports whether the token carries the given scope.
func (t AccessToken) HasScope(scope TokenScope) bool {
	for _, s := range t.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// ExpiredAt reports whether the token is expired at the given instant.
func (t AccessToken) ExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
