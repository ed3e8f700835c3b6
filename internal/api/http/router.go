package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soklet/toystore-app-sub001/internal/api/http/handlers"
	"github.com/soklet/toystore-app-sub001/internal/auth"
	"github.com/soklet/toystore-app-sub001/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Toys           *handlers.ToysHandler
	Purchases      *handlers.PurchasesHandler
	Events         *handlers.EventsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Every route installs either an explicit
// policy or the anonymous context middleware, so the ambient request context
// is always established before handler code runs.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	mw := cfg.AuthMiddleware

	staffOnly := auth.Policy{
		Audience: domain.TokenAudienceAPI,
		Roles:    []domain.RoleID{domain.RoleAdministrator, domain.RoleEmployee},
	}
	adminOnly := auth.Policy{
		Audience: domain.TokenAudienceAPI,
		Roles:    []domain.RoleID{domain.RoleAdministrator},
	}
	anyAccount := auth.Policy{Audience: domain.TokenAudienceAPI}
	streamHandshake := auth.Policy{
		Audience: domain.TokenAudienceSSE,
		Scopes:   []domain.TokenScope{domain.ScopeSSEHandshake},
		Roles:    []domain.RoleID{domain.RoleAdministrator},
	}

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/accounts/authenticate", mw.Anonymous(), cfg.Accounts.Authenticate)
	app.Get("/accounts/me", mw.Require(anyAccount), cfg.Accounts.Me)

	app.Get("/toys", mw.Anonymous(), cfg.Toys.List)
	app.Get("/toys/:toyId", mw.Anonymous(), cfg.Toys.Get)
	app.Post("/toys", mw.Require(staffOnly), cfg.Toys.Create)
	app.Put("/toys/:toyId", mw.Require(staffOnly), cfg.Toys.Update)
	app.Delete("/toys/:toyId", mw.Require(staffOnly), cfg.Toys.Delete)

	app.Post("/purchases", mw.Require(anyAccount), cfg.Purchases.Create)
	app.Get("/purchases", mw.Require(anyAccount), cfg.Purchases.ListMine)
	app.Get("/purchases/all", mw.Require(adminOnly), cfg.Purchases.ListAll)

	// Event streams stay administrator-only while toy browsing is public.
	app.Post("/event-streams/access-tokens", mw.Require(adminOnly), cfg.Events.CreateAccessToken)
	app.Get("/event-streams", mw.Require(streamHandshake), cfg.Events.Subscribe)
}
