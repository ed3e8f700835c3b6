package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/soklet/toystore-app-sub001/internal/api/dto"
	"github.com/soklet/toystore-app-sub001/internal/service"
	apperrors "github.com/soklet/toystore-app-sub001/pkg/util"
)

// ToysHandler exposes toy browsing and administration endpoints.
type ToysHandler struct {
	toys *service.ToyService
}

// NewToysHandler constructs the handler.
func NewToysHandler(toyService *service.ToyService) *ToysHandler {
	return &ToysHandler{toys: toyService}
}

// List handles GET /toys.
func (h *ToysHandler) List(c *fiber.Ctx) error {
	toys, err := h.toys.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewToyListResponse(toys)})
}

// Get handles GET /toys/:toyId.
func (h *ToysHandler) Get(c *fiber.Ctx) error {
	toy, err := h.toys.Get(c.UserContext(), c.Params("toyId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewToyResponse(toy)})
}

// Create handles POST /toys.
func (h *ToysHandler) Create(c *fiber.Ctx) error {
	var req dto.ToyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	toy, err := h.toys.Create(c.UserContext(), service.ToyInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewToyResponse(toy)})
}

// Update handles PUT /toys/:toyId.
func (h *ToysHandler) Update(c *fiber.Ctx) error {
	var req dto.ToyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	toy, err := h.toys.Update(c.UserContext(), c.Params("toyId"), service.ToyInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewToyResponse(toy)})
}

// Delete handles DELETE /toys/:toyId.
func (h *ToysHandler) Delete(c *fiber.Ctx) error {
	if err := h.toys.Delete(c.UserContext(), c.Params("toyId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
