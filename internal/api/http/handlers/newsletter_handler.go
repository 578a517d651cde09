package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/simares/storefront/internal/api/dto"
	apperrors "github.com/simares/storefront/pkg/util"
)

// NewsletterHandler forwards newsletter signups to the backend.
type NewsletterHandler struct{}

// NewNewsletterHandler constructs handler.
func NewNewsletterHandler() *NewsletterHandler {
	return &NewsletterHandler{}
}

// Subscribe handles POST /api/newsletter/subscribe.
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("valid email required", nil)
	}

	state := StateFromCtx(c)
	if err := state.Commerce.SubscribeNewsletter(c.UserContext(), req.Email, req.Name); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
