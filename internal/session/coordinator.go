// Package session coordinates authentication with the guest-cart merge:
// on login the anonymous session's cart is folded into the account exactly
// once, then the mirror is refreshed from the merged authoritative cart.
package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/simares/storefront/internal/auth"
	"github.com/simares/storefront/internal/commerce"
	"github.com/simares/storefront/internal/domain"
	"github.com/simares/storefront/pkg/util"
)

// AuthAPI is the remote auth and merge surface. Implemented by
// *commerce.Client.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (commerce.LoginResult, error)
	Register(ctx context.Context, name, email, password string) (commerce.LoginResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (domain.User, error)
	MergeCart(ctx context.Context, sessionID string) error
}

// Identity is the token-owning store the coordinator writes to.
type Identity interface {
	GetSessionID() string
	AuthToken() (string, bool)
	SetAuthToken(token string) error
	ClearAuthToken() error
}

// CartRefresher replaces the cart mirror with the server's view.
type CartRefresher interface {
	Refresh(ctx context.Context) error
}

// Outcome reports a successful login or registration. The warnings are
// non-fatal: a failed merge or refresh never rolls back authentication.
type Outcome struct {
	User           domain.User
	MergeWarning   error
	RefreshWarning error
}

// Coordinator runs the login, logout and merge flows.
type Coordinator struct {
	api      AuthAPI
	identity Identity
	cart     CartRefresher
	logger   *zap.Logger
}

// NewCoordinator builds the coordinator.
func NewCoordinator(api AuthAPI, identity Identity, cart CartRefresher, logger *zap.Logger) *Coordinator {
	return &Coordinator{api: api, identity: identity, cart: cart, logger: logger}
}

// Login authenticates, stores the token, merges the guest cart into the
// account and refreshes the mirror. The merge runs after the token is
// stored so the merge request is itself authenticated, and exactly once per
// login.
func (c *Coordinator) Login(ctx context.Context, email, password string) (Outcome, error) {
	result, err := c.api.Login(ctx, email, password)
	if err != nil {
		return Outcome{}, err
	}
	return c.establish(ctx, result)
}

// Register creates an account and runs the same merge pipeline as Login.
func (c *Coordinator) Register(ctx context.Context, name, email, password string) (Outcome, error) {
	result, err := c.api.Register(ctx, name, email, password)
	if err != nil {
		return Outcome{}, err
	}
	return c.establish(ctx, result)
}

func (c *Coordinator) establish(ctx context.Context, result commerce.LoginResult) (Outcome, error) {
	outcome := Outcome{User: result.User}

	if err := c.identity.SetAuthToken(result.Token); err != nil {
		// The in-memory token is still valid for this process.
		c.logger.Warn("failed to persist auth token", zap.Error(err))
	}

	if err := c.api.MergeCart(ctx, c.identity.GetSessionID()); err != nil {
		c.logger.Warn("guest cart merge failed", zap.Error(err))
		outcome.MergeWarning = err
	}

	if err := c.cart.Refresh(ctx); err != nil {
		c.logger.Warn("cart refresh after login failed", zap.Error(err))
		outcome.RefreshWarning = err
	}

	return outcome, nil
}

// Logout clears the auth token only. The session id, and therefore the
// now-anonymous cart, is retained. The remote logout is best effort.
func (c *Coordinator) Logout(ctx context.Context) error {
	if _, ok := c.identity.AuthToken(); ok {
		if err := c.api.Logout(ctx); err != nil {
			c.logger.Warn("remote logout failed", zap.Error(err))
		}
	}
	return c.identity.ClearAuthToken()
}

// CurrentUser returns the authenticated user. A rejected or locally expired
// token triggers forced logout: the token is cleared and an auth error is
// returned for the caller to treat as signed-out, without disturbing
// unrelated flows.
func (c *Coordinator) CurrentUser(ctx context.Context) (domain.User, error) {
	token, ok := c.identity.AuthToken()
	if !ok {
		return domain.User{}, util.NewAuthError("not authenticated")
	}
	if auth.IsExpired(token, time.Now()) {
		c.logger.Info("stored token expired, forcing logout")
		if err := c.identity.ClearAuthToken(); err != nil {
			c.logger.Warn("failed to clear expired token", zap.Error(err))
		}
		return domain.User{}, util.NewAuthError("token expired")
	}

	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		if util.IsAuthError(err) {
			c.logger.Info("token rejected by backend, forcing logout")
			if clearErr := c.identity.ClearAuthToken(); clearErr != nil {
				c.logger.Warn("failed to clear rejected token", zap.Error(clearErr))
			}
		}
		return domain.User{}, err
	}
	return user, nil
}
