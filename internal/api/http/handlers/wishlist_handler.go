package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simares/storefront/internal/api/dto"
	"github.com/simares/storefront/internal/catalog"
	"github.com/simares/storefront/internal/domain"
	apperrors "github.com/simares/storefront/pkg/util"
)

// WishlistHandler exposes the shopper's wishlist.
type WishlistHandler struct{}

// NewWishlistHandler constructs handler.
func NewWishlistHandler() *WishlistHandler {
	return &WishlistHandler{}
}

// Get handles GET /api/wishlist.
func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	state := StateFromCtx(c)
	raws, err := state.Commerce.Wishlist(c.UserContext())
	if err != nil {
		return err
	}

	products := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, catalog.Normalize(raw))
	}
	return c.JSON(fiber.Map{"data": products})
}

// Toggle handles POST /api/wishlist/toggle.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	var req dto.ToggleWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProductID == "" {
		return apperrors.NewValidationError("product_id required", nil)
	}

	state := StateFromCtx(c)
	if err := state.Commerce.ToggleWishlist(c.UserContext(), req.ProductID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
