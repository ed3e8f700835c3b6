package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/soklet/toystore-app-sub001/internal/domain"
)

// Sentinel errors for token handling and policy enforcement.
var (
	ErrTokenInvalid      = errors.New("auth: token invalid")
	ErrTokenExpired      = errors.New("auth: token expired")
	ErrUnauthenticated   = errors.New("auth: missing credentials")
	ErrWrongAudience     = errors.New("auth: wrong token audience")
	ErrInsufficientScope = errors.New("auth: insufficient scope")
	ErrForbidden         = errors.New("auth: access denied")
)

func init() {
	// iat/exp must round-trip with sub-second precision.
	jwt.TimePrecision = time.Microsecond
}

// TokenManager signs and verifies access tokens. Encoding produces a compact
// three-part JWT (header.payload.signature, base64url) signed with Ed25519;
// only EdDSA is ever accepted on decode, so an attacker cannot negotiate a
// weaker algorithm. TokenManager is stateless and safe for concurrent use.
type TokenManager struct {
	keys   *SigningKeys
	parser *jwt.Parser
}

// NewTokenManager builds a codec over the process signing keypair.
func NewTokenManager(keys *SigningKeys) *TokenManager {
	return &TokenManager{
		keys: keys,
		// Expiry is deliberately not validated here: the enforcer checks
		// it as its own, separately reported condition.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// tokenClaims is the JWT payload for an access token.
type tokenClaims struct {
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// Encode signs the token fields into a compact string.
func (tm *TokenManager) Encode(token domain.AccessToken) (string, error) {
	if token.AccountID == "" {
		return "", fmt.Errorf("%w: missing account id", ErrTokenInvalid)
	}
	if !token.Audience.Valid() {
		return "", fmt.Errorf("%w: unknown audience %q", ErrTokenInvalid, token.Audience)
	}
	if !token.ExpiresAt.After(token.IssuedAt) {
		return "", fmt.Errorf("%w: expiry not after issuance", ErrTokenInvalid)
	}

	scopes := make([]string, 0, len(token.Scopes))
	for _, s := range token.Scopes {
		scopes = append(scopes, string(s))
	}

	claims := &tokenClaims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   token.AccountID,
			Audience:  jwt.ClaimStrings{string(token.Audience)},
			IssuedAt:  jwt.NewNumericDate(token.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(token.ExpiresAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(tm.keys.Private())
}

// Decode verifies the signature and structure of an encoded token and
// returns its fields. Malformed structure, a non-EdDSA algorithm, a bad
// signature or missing fields all fail with ErrTokenInvalid. An expired but
// otherwise valid token decodes successfully; expiry is the caller's check.
func (tm *TokenManager) Decode(encoded string) (domain.AccessToken, error) {
	parsed, err := tm.parser.ParseWithClaims(encoded, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return tm.keys.Public(), nil
	})
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return domain.AccessToken{}, ErrTokenInvalid
	}
	if claims.Subject == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return domain.AccessToken{}, fmt.Errorf("%w: missing required claims", ErrTokenInvalid)
	}
	if len(claims.Audience) != 1 {
		return domain.AccessToken{}, fmt.Errorf("%w: audience must be a single value", ErrTokenInvalid)
	}
	audience := domain.TokenAudience(claims.Audience[0])
	if !audience.Valid() {
		return domain.AccessToken{}, fmt.Errorf("%w: unknown audience %q", ErrTokenInvalid, claims.Audience[0])
	}
	if !claims.ExpiresAt.Time.After(claims.IssuedAt.Time) {
		return domain.AccessToken{}, fmt.Errorf("%w: expiry not after issuance", ErrTokenInvalid)
	}

	var scopes []domain.TokenScope
	for _, s := range claims.Scopes {
		scopes = append(scopes, domain.TokenScope(s))
	}

	return domain.AccessToken{
		AccountID: claims.Subject,
		Audience:  audience,
		Scopes:    scopes,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
