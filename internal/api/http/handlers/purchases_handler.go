package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/soklet/toystore-app-sub001/internal/api/dto"
	"github.com/soklet/toystore-app-sub001/internal/service"
	apperrors "github.com/soklet/toystore-app-sub001/pkg/util"
)

// PurchasesHandler exposes purchase endpoints.
type PurchasesHandler struct {
	purchases *service.PurchaseService
}

// NewPurchasesHandler constructs the handler.
func NewPurchasesHandler(purchaseService *service.PurchaseService) *PurchasesHandler {
	return &PurchasesHandler{purchases: purchaseService}
}

// Create handles POST /purchases.
func (h *PurchasesHandler) Create(c *fiber.Ctx) error {
	var req dto.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	purchase, err := h.purchases.Purchase(c.UserContext(), service.PurchaseInput{
		ToyID:          req.ToyID,
		CardNumber:     req.CreditCardNumber,
		ExpirationDate: req.CreditCardExpiration,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPurchaseResponse(purchase)})
}

// ListMine handles GET /purchases.
func (h *PurchasesHandler) ListMine(c *fiber.Ctx) error {
	purchases, err := h.purchases.ListMine(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPurchaseListResponse(purchases)})
}

// ListAll handles GET /purchases/all.
func (h *PurchasesHandler) ListAll(c *fiber.Ctx) error {
	purchases, err := h.purchases.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPurchaseListResponse(purchases)})
}
