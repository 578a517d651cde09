package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/simares/storefront/internal/api/http/handlers"
)

const (
	sessionCookie = "sid"
	// Cookie lifetime mirrors the browser-profile lifetime of the session id.
	sessionCookieMaxAge = 365 * 24 * 60 * 60
)

// StateFactory builds the client stack for a session id.
type StateFactory func(sid string) *handlers.ClientState

// SessionManager mints the sid cookie and caches per-session client state.
type SessionManager struct {
	mu      sync.Mutex
	states  map[string]*handlers.ClientState
	factory StateFactory
}

// NewSessionManager builds a manager around the given factory.
func NewSessionManager(factory StateFactory) *SessionManager {
	return &SessionManager{states: make(map[string]*handlers.ClientState), factory: factory}
}

// State returns the cached client state for a session id, building it on
// first use.
func (m *SessionManager) State(sid string) *handlers.ClientState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.states[sid]; ok {
		return state
	}
	state := m.factory(sid)
	m.states[sid] = state
	return state
}

// Middleware ensures every request carries a session cookie and attaches
// the session's client state to the request context.
func (m *SessionManager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sessionCookie)
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				MaxAge:   sessionCookieMaxAge,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(handlers.StateContextKey, m.State(sid))
		return c.Next()
	}
}
