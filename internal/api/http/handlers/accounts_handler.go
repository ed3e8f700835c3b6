package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/soklet/toystore-app-sub001/internal/api/dto"
	"github.com/soklet/toystore-app-sub001/internal/reqctx"
	"github.com/soklet/toystore-app-sub001/internal/service"
	apperrors "github.com/soklet/toystore-app-sub001/pkg/util"
)

// AccountsHandler exposes authentication endpoints.
type AccountsHandler struct {
	auth *service.AuthService
}

// NewAccountsHandler constructs the handler.
func NewAccountsHandler(authService *service.AuthService) *AccountsHandler {
	return &AccountsHandler{auth: authService}
}

// Authenticate handles POST /accounts/authenticate.
func (h *AccountsHandler) Authenticate(c *fiber.Ctx) error {
	var req dto.AuthenticateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, token, err := h.auth.Authenticate(c.UserContext(), req.EmailAddress, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"data": dto.AuthenticateResponse{
			AuthenticationToken: token,
			Account:             dto.NewAccountResponse(account),
		},
	})
}

// Me handles GET /accounts/me, echoing the ambient request context.
func (h *AccountsHandler) Me(c *fiber.Ctx) error {
	rc := reqctx.MustFromContext(c.UserContext())
	return c.JSON(fiber.Map{"data": dto.NewContextResponse(rc)})
}
