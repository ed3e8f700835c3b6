package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soklet/toystore-app-sub001/internal/auth"
	"github.com/soklet/toystore-app-sub001/internal/config"
	"github.com/soklet/toystore-app-sub001/internal/domain"
	"github.com/soklet/toystore-app-sub001/internal/repository"
	apperrors "github.com/soklet/toystore-app-sub001/pkg/util"
)

// CredentialVerifier is the slice of the password hasher the auth service
// needs. *auth.PasswordHasher satisfies it.
type CredentialVerifier interface {
	Verify(password, encoded string) (bool, error)
	DummyHash() string
}

// AuthService verifies credentials and mints access tokens.
type AuthService struct {
	accounts  repository.AccountRepository
	hasher    CredentialVerifier
	tokens    *auth.TokenManager
	limiter   *auth.LoginLimiter
	accessTTL time.Duration
	sseTTL    time.Duration
	now       func() time.Time
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	AccountRepo  repository.AccountRepository
	Hasher       CredentialVerifier
	TokenManager *auth.TokenManager
	LoginLimiter *auth.LoginLimiter
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:  deps.AccountRepo,
		hasher:    deps.Hasher,
		tokens:    deps.TokenManager,
		limiter:   deps.LoginLimiter,
		accessTTL: cfg.AccessTokenTTL(),
		sseTTL:    cfg.SSETokenTTL(),
		now:       time.Now,
	}
}

// Authenticate verifies email+password and mints an API-audience token.
// Failures are opaque: the response never distinguishes an unknown email
// from a wrong password, and exactly one hash verification runs per call so
// the two cases cost the same.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Account, string, error) {
	fieldErrors := map[string]string{}
	if email == "" {
		fieldErrors["emailAddress"] = "email address is required"
	}
	if password == "" {
		fieldErrors["password"] = "password is required"
	}
	if len(fieldErrors) > 0 {
		return nil, "", apperrors.NewValidationError("invalid login request", fieldErrors)
	}

	if !s.limiter.Allow(ctx, email) {
		return nil, "", apperrors.NewAuthenticationFailed()
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Burn an equivalent verification so a lookup miss is not
			// distinguishable from a password mismatch by latency.
			_, _ = s.hasher.Verify(password, s.hasher.DummyHash())
			return nil, "", apperrors.NewAuthenticationFailed()
		}
		return nil, "", err
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	if !ok {
		return nil, "", apperrors.NewAuthenticationFailed()
	}

	s.limiter.Reset(ctx, email)

	token, err := s.mint(account.ID, domain.TokenAudienceAPI, nil, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// MintStreamToken issues a short-lived SSE-audience token for an already
// authenticated caller. The narrow audience, single scope and short TTL
// bound the blast radius if the token leaks through URL logs.
func (s *AuthService) MintStreamToken(account *domain.Account) (string, error) {
	return s.mint(account.ID, domain.TokenAudienceSSE,
		[]domain.TokenScope{domain.ScopeSSEHandshake}, s.sseTTL)
}

func (s *AuthService) mint(accountID string, audience domain.TokenAudience, scopes []domain.TokenScope, ttl time.Duration) (string, error) {
	now := s.now()
	encoded, err := s.tokens.Encode(domain.AccessToken{
		AccountID: accountID,
		Audience:  audience,
		Scopes:    scopes,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return encoded, nil
}
