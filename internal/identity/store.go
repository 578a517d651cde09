// Package identity owns the anonymous session identifier and the bearer
// credential. The session id is minted once and survives logout; losing the
// backing storage only degrades to a fresh anonymous session.
package identity

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the persisted identity snapshot. Backends must store it
// all-or-nothing; a partial write must never surface.
type State struct {
	SessionID string `json:"session_id"`
	AuthToken string `json:"auth_token,omitempty"`
}

// Backend persists identity state.
type Backend interface {
	Load() (State, error)
	Save(State) error
}

// Store is the process-wide identity owner. All access goes through its
// mutex; persistence failures degrade rather than crash cart flows.
type Store struct {
	backend Backend
	logger  *zap.Logger

	mu     sync.Mutex
	state  State
	loaded bool
}

// NewStore builds a store over the given backend.
func NewStore(backend Backend, logger *zap.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

// load populates the cached state from the backend once. A backend failure
// is equivalent to a new shopper: warn and start anonymous.
func (s *Store) load() {
	if s.loaded {
		return
	}
	state, err := s.backend.Load()
	if err != nil {
		s.logger.Warn("identity storage unreadable, starting anonymous session", zap.Error(err))
		state = State{}
	}
	s.state = state
	s.loaded = true
}

// GetSessionID returns the persisted session identifier, minting and
// persisting a new one on first use. Idempotent: once assigned the value is
// never regenerated, or the guest cart becomes unreachable.
func (s *Store) GetSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	if s.state.SessionID != "" {
		return s.state.SessionID
	}

	// Generate first, then write: the persisted value is always complete.
	s.state.SessionID = uuid.NewString()
	if err := s.backend.Save(s.state); err != nil {
		s.logger.Warn("failed to persist session id", zap.Error(err))
	}
	return s.state.SessionID
}

// AuthToken returns the stored bearer credential, if any.
func (s *Store) AuthToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.state.AuthToken, s.state.AuthToken != ""
}

// SetAuthToken stores the bearer credential obtained at login.
func (s *Store) SetAuthToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.state.AuthToken = token
	return s.backend.Save(s.state)
}

// ClearAuthToken removes the bearer credential only. The session id, and
// therefore the now-anonymous cart, is retained unchanged.
func (s *Store) ClearAuthToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.state.AuthToken = ""
	return s.backend.Save(s.state)
}
