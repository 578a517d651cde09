package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simares/storefront/internal/cart"
	"github.com/simares/storefront/internal/commerce"
	"github.com/simares/storefront/internal/identity"
	"github.com/simares/storefront/internal/session"
)

// StateContextKey is the locals key under which the session middleware
// attaches the client state.
const StateContextKey = "session_state"

// ClientState bundles the per-session client stack: identity, commerce
// client, cart mirror and auth coordinator. One instance exists per shopper
// session for the life of the process.
type ClientState struct {
	Identity *identity.Store
	Commerce *commerce.Client
	Cart     *cart.Synchronizer
	Session  *session.Coordinator
}

// StateFromCtx returns the client state attached by the session middleware.
func StateFromCtx(c *fiber.Ctx) *ClientState {
	state, _ := c.Locals(StateContextKey).(*ClientState)
	return state
}
