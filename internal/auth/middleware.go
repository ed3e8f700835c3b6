package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/soklet/toystore-app-sub001/internal/domain"
	"github.com/soklet/toystore-app-sub001/internal/reqctx"
	apperrors "github.com/soklet/toystore-app-sub001/pkg/util"
)

// SSETokenQueryParam carries the handshake token for event-stream requests.
// EventSource cannot set custom headers, so that transport falls back to a
// query parameter.
const SSETokenQueryParam = "sse-access-token"

// Middleware wires the authorization enforcer into fiber routes.
type Middleware struct {
	enforcer *Enforcer
}

// NewMiddleware constructs the middleware.
func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{enforcer: enforcer}
}

// Require returns a handler enforcing the policy before the endpoint body
// runs. On success the resolved account populates the request's ambient
// context, with locale and time zone taken from the account's preferences.
func (m *Middleware) Require(policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawToken := extractToken(c, policy.Audience)

		account, err := m.enforcer.Authorize(c.UserContext(), rawToken, policy)
		if err != nil {
			return mapAuthError(err)
		}

		c.SetUserContext(reqctx.With(c.UserContext(), reqctx.ForAccount(account)))
		return c.Next()
	}
}

// Anonymous establishes an unauthenticated ambient context for public
// endpoints, resolved from request headers. Every route installs either this
// or Require so downstream reads of the ambient context never find it unset.
func (m *Middleware) Anonymous() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc := reqctx.New(nil,
			reqctx.ParseAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage)),
			reqctx.ParseTimeZone(c.Get("X-Time-Zone")),
		)
		c.SetUserContext(reqctx.With(c.UserContext(), rc))
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, audience domain.TokenAudience) string {
	if audience == domain.TokenAudienceSSE {
		if token := c.Query(SSETokenQueryParam); token != "" {
			return token
		}
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return apperrors.NewUnauthenticated()
	case errors.Is(err, ErrTokenInvalid):
		return apperrors.NewTokenInvalid()
	case errors.Is(err, ErrTokenExpired):
		return apperrors.NewTokenExpired()
	case errors.Is(err, ErrWrongAudience):
		return apperrors.NewWrongAudience()
	case errors.Is(err, ErrInsufficientScope):
		return apperrors.NewInsufficientScope()
	case errors.Is(err, ErrForbidden):
		return apperrors.NewForbidden()
	default:
		return apperrors.NewInternalError(err)
	}
}
