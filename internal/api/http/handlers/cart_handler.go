package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simares/storefront/internal/api/dto"
	apperrors "github.com/simares/storefront/pkg/util"
)

// CartHandler exposes the session cart to the browser.
type CartHandler struct{}

// NewCartHandler constructs handler.
func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	state := StateFromCtx(c)
	if err := state.Cart.Refresh(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": state.Cart.Cart()})
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req dto.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	state := StateFromCtx(c)
	if err := state.Cart.AddItem(c.UserContext(), req.VariantID, req.Quantity); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": state.Cart.Cart()})
}

// Update handles PUT /api/cart/:id.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	state := StateFromCtx(c)
	if err := state.Cart.UpdateQuantity(c.UserContext(), c.Params("id"), req.Quantity); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": state.Cart.Cart()})
}

// Remove handles DELETE /api/cart/:id.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	state := StateFromCtx(c)
	if err := state.Cart.RemoveItem(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": state.Cart.Cart()})
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	state := StateFromCtx(c)
	if err := state.Cart.Clear(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": state.Cart.Cart()})
}
