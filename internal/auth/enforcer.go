package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soklet/toystore-app-sub001/internal/domain"
)

// AccountResolver looks up the account a verified token refers to.
type AccountResolver interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// Policy declares what an endpoint requires of a caller: the token audience,
// any scopes (narrow-purpose tokens only), and the set of acceptable roles.
// An empty role set means any authenticated account.
type Policy struct {
	Audience domain.TokenAudience
	Scopes   []domain.TokenScope
	Roles    []domain.RoleID
}

// Enforcer evaluates endpoint policies against presented tokens.
type Enforcer struct {
	tokens   *TokenManager
	accounts AccountResolver
	now      func() time.Time
}

// NewEnforcer builds an enforcer over the token codec and account store.
func NewEnforcer(tokens *TokenManager, accounts AccountResolver) *Enforcer {
	return &Enforcer{tokens: tokens, accounts: accounts, now: time.Now}
}

// Authorize checks rawToken against the policy and resolves the account on
// success. Checks run in a fixed order and the first failure is reported as
// its own condition: presence, signature, expiry, audience, scopes, role.
func (e *Enforcer) Authorize(ctx context.Context, rawToken string, policy Policy) (*domain.Account, error) {
	if rawToken == "" {
		return nil, ErrUnauthenticated
	}

	token, err := e.tokens.Decode(rawToken)
	if err != nil {
		return nil, err
	}

	if token.ExpiredAt(e.now()) {
		return nil, ErrTokenExpired
	}

	if token.Audience != policy.Audience {
		return nil, ErrWrongAudience
	}

	for _, scope := range policy.Scopes {
		if !token.HasScope(scope) {
			return nil, ErrInsufficientScope
		}
	}

	account, err := e.accounts.GetByID(ctx, token.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The subject vanished after issuance; the token no longer
			// refers to anything.
			return nil, ErrTokenInvalid
		}
		return nil, err
	}

	if len(policy.Roles) > 0 && !roleAllowed(account.RoleID, policy.Roles) {
		return nil, ErrForbidden
	}

	return account, nil
}

func roleAllowed(role domain.RoleID, allowed []domain.RoleID) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
