package session

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simares/storefront/internal/commerce"
	"github.com/simares/storefront/internal/domain"
	"github.com/simares/storefront/internal/identity"
	"github.com/simares/storefront/pkg/util"
)

type mockAuthAPI struct {
	loginFn     func(ctx context.Context, email, password string) (commerce.LoginResult, error)
	registerFn  func(ctx context.Context, name, email, password string) (commerce.LoginResult, error)
	logoutFn    func(ctx context.Context) error
	userFn      func(ctx context.Context) (domain.User, error)
	mergeFn     func(ctx context.Context, sessionID string) error
	mergeCalls  int
	logoutCalls int
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (commerce.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return commerce.LoginResult{}, nil
}

func (m *mockAuthAPI) Register(ctx context.Context, name, email, password string) (commerce.LoginResult, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, name, email, password)
	}
	return commerce.LoginResult{}, nil
}

func (m *mockAuthAPI) Logout(ctx context.Context) error {
	m.logoutCalls++
	if m.logoutFn != nil {
		return m.logoutFn(ctx)
	}
	return nil
}

func (m *mockAuthAPI) CurrentUser(ctx context.Context) (domain.User, error) {
	if m.userFn != nil {
		return m.userFn(ctx)
	}
	return domain.User{}, nil
}

func (m *mockAuthAPI) MergeCart(ctx context.Context, sessionID string) error {
	m.mergeCalls++
	if m.mergeFn != nil {
		return m.mergeFn(ctx, sessionID)
	}
	return nil
}

type mockRefresher struct {
	calls int
	err   error
}

func (m *mockRefresher) Refresh(context.Context) error {
	m.calls++
	return m.err
}

func testIdentity() *identity.Store {
	return identity.NewStore(identity.NewMemoryBackend(identity.State{SessionID: "sid-1"}), zap.NewNop())
}

func loginResult() commerce.LoginResult {
	return commerce.LoginResult{
		Token: "tok-1",
		User:  domain.User{ID: "u1", Name: "Dana", Email: "dana@example.com"},
	}
}

func TestLoginStoresTokenMergesAndRefreshes(t *testing.T) {
	var mergedSession string
	var tokenAtMerge string

	store := testIdentity()
	api := &mockAuthAPI{
		loginFn: func(_ context.Context, email, password string) (commerce.LoginResult, error) {
			return loginResult(), nil
		},
		mergeFn: func(_ context.Context, sessionID string) error {
			mergedSession = sessionID
			tokenAtMerge, _ = store.AuthToken()
			return nil
		},
	}
	refresher := &mockRefresher{}
	coordinator := NewCoordinator(api, store, refresher, zap.NewNop())

	outcome, err := coordinator.Login(context.Background(), "dana@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "u1", outcome.User.ID)
	assert.Nil(t, outcome.MergeWarning)
	assert.Equal(t, 1, api.mergeCalls, "merge runs exactly once per login")
	assert.Equal(t, "sid-1", mergedSession, "merge is keyed by the guest session id")
	assert.Equal(t, "tok-1", tokenAtMerge, "token is stored before the merge so the merge is authenticated")
	assert.Equal(t, 1, refresher.calls, "mirror refreshed after the merge")
}

func TestLoginFailureStoresNothing(t *testing.T) {
	store := testIdentity()
	api := &mockAuthAPI{
		loginFn: func(context.Context, string, string) (commerce.LoginResult, error) {
			return commerce.LoginResult{}, util.NewAuthError("invalid credentials")
		},
	}
	refresher := &mockRefresher{}
	coordinator := NewCoordinator(api, store, refresher, zap.NewNop())

	_, err := coordinator.Login(context.Background(), "dana@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, util.IsAuthError(err))

	_, ok := store.AuthToken()
	assert.False(t, ok, "no token stored on failed login")
	assert.Equal(t, 0, api.mergeCalls, "no merge attempted on failed login")
	assert.Equal(t, 0, refresher.calls)
}

func TestMergeFailureDoesNotRollBackLogin(t *testing.T) {
	store := testIdentity()
	api := &mockAuthAPI{
		loginFn: func(context.Context, string, string) (commerce.LoginResult, error) {
			return loginResult(), nil
		},
		mergeFn: func(context.Context, string) error {
			return util.NewNetworkError(nil)
		},
	}
	refresher := &mockRefresher{}
	coordinator := NewCoordinator(api, store, refresher, zap.NewNop())

	outcome, err := coordinator.Login(context.Background(), "dana@example.com", "secret")
	require.NoError(t, err, "login succeeds even when the merge fails")

	assert.Equal(t, "u1", outcome.User.ID)
	require.Error(t, outcome.MergeWarning)

	token, ok := store.AuthToken()
	require.True(t, ok, "token retained after merge failure")
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, 1, refresher.calls, "a subsequent refresh still replaces the mirror")
}

func TestLogoutKeepsSessionID(t *testing.T) {
	store := testIdentity()
	require.NoError(t, store.SetAuthToken("tok-1"))

	api := &mockAuthAPI{}
	coordinator := NewCoordinator(api, store, &mockRefresher{}, zap.NewNop())

	require.NoError(t, coordinator.Logout(context.Background()))

	_, ok := store.AuthToken()
	assert.False(t, ok)
	assert.Equal(t, "sid-1", store.GetSessionID(), "logging out does not destroy the guest cart")
	assert.Equal(t, 1, api.logoutCalls)
}

func TestCurrentUserRejectedTokenForcesLogout(t *testing.T) {
	store := testIdentity()
	require.NoError(t, store.SetAuthToken("tok-stale"))

	api := &mockAuthAPI{
		userFn: func(context.Context) (domain.User, error) {
			return domain.User{}, util.NewAuthError("token invalid")
		},
	}
	coordinator := NewCoordinator(api, store, &mockRefresher{}, zap.NewNop())

	_, err := coordinator.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, util.IsAuthError(err))

	_, ok := store.AuthToken()
	assert.False(t, ok, "rejected token is invalidated locally")
	assert.Equal(t, "sid-1", store.GetSessionID(), "session id untouched by forced logout")
}

func TestCurrentUserExpiredJWTSkipsNetwork(t *testing.T) {
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	store := testIdentity()
	require.NoError(t, store.SetAuthToken(expired))

	networkCalled := false
	api := &mockAuthAPI{
		userFn: func(context.Context) (domain.User, error) {
			networkCalled = true
			return domain.User{}, nil
		},
	}
	coordinator := NewCoordinator(api, store, &mockRefresher{}, zap.NewNop())

	_, err = coordinator.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, util.IsAuthError(err))
	assert.False(t, networkCalled, "a locally expired token never reaches the backend")

	_, ok := store.AuthToken()
	assert.False(t, ok)
}

func TestCurrentUserAnonymous(t *testing.T) {
	coordinator := NewCoordinator(&mockAuthAPI{}, testIdentity(), &mockRefresher{}, zap.NewNop())

	_, err := coordinator.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, util.IsAuthError(err))
}
