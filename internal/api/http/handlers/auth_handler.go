package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simares/storefront/internal/api/dto"
	"github.com/simares/storefront/internal/session"
	apperrors "github.com/simares/storefront/pkg/util"
)

// AuthHandler exposes login, registration and account endpoints.
type AuthHandler struct{}

// NewAuthHandler constructs handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	state := StateFromCtx(c)
	outcome, err := state.Session.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(outcomeResponse(outcome))
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	state := StateFromCtx(c)
	outcome, err := state.Session.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(outcomeResponse(outcome))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	state := StateFromCtx(c)
	if err := state.Session.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// User handles GET /api/auth/user.
func (h *AuthHandler) User(c *fiber.Ctx) error {
	state := StateFromCtx(c)
	user, err := state.Session.CurrentUser(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": user}})
}

// outcomeResponse serializes a login outcome, downgrading merge and refresh
// failures to warnings as they never invalidate the login itself.
func outcomeResponse(outcome session.Outcome) fiber.Map {
	data := fiber.Map{"user": outcome.User}
	warnings := fiber.Map{}
	if outcome.MergeWarning != nil {
		warnings["merge"] = outcome.MergeWarning.Error()
	}
	if outcome.RefreshWarning != nil {
		warnings["refresh"] = outcome.RefreshWarning.Error()
	}
	if len(warnings) > 0 {
		data["warnings"] = warnings
	}
	return fiber.Map{"data": data}
}
