package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/simares/storefront/internal/config"
	"github.com/simares/storefront/internal/domain"
	"github.com/simares/storefront/pkg/util"
)

// Identity supplies the session header and optional bearer credential for
// every outbound request.
type Identity interface {
	GetSessionID() string
	AuthToken() (string, bool)
}

// Client talks to the remote storefront commerce API. Every request carries
// an X-Session-ID header derived from the identity store and, when present,
// a bearer token. The backend is authoritative for price, stock and cart
// state; the client never invents either.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	identity   Identity
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient builds a commerce API client.
func NewClient(cfg config.CommerceConfig, identity Identity, logger *zap.Logger) *Client {
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = int(rps)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		identity:   identity,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		logger:     logger,
	}
}

// remoteError is the backend error envelope, parsed best effort.
type remoteError struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (e remoteError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error.Message
}

// do executes one request against the commerce API. A nil out skips response
// decoding. Non-2xx responses are mapped onto the error taxonomy; the caller
// never sees a raw status code.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return util.NewNetworkError(err)
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return util.NewInternalError(fmt.Errorf("marshaling request: %w", err))
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return util.NewInternalError(fmt.Errorf("creating request: %w", err))
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("commerce request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return util.NewNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return util.NewNetworkError(fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode >= 400 {
		var remote remoteError
		_ = json.Unmarshal(respBody, &remote) // best effort
		return util.FromStatus(resp.StatusCode, remote.text())
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return util.NewNetworkError(fmt.Errorf("parsing response: %w", err))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("X-Session-ID", c.identity.GetSessionID())
	if token, ok := c.identity.AuthToken(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// GetCart fetches the current cart for the active session or user.
func (c *Client) GetCart(ctx context.Context) ([]RawCartItem, error) {
	var payload cartPayload
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// AddToCart adds a variant to the cart and returns the updated item list.
func (c *Client) AddToCart(ctx context.Context, variantID string, quantity int) ([]RawCartItem, error) {
	body := map[string]any{"product_variant_id": variantID, "quantity": quantity}
	var payload cartPayload
	if err := c.do(ctx, http.MethodPost, "/cart", body, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// UpdateCartItem changes the quantity of one cart line.
func (c *Client) UpdateCartItem(ctx context.Context, lineID string, quantity int) ([]RawCartItem, error) {
	body := map[string]any{"quantity": quantity}
	var payload cartPayload
	if err := c.do(ctx, http.MethodPut, "/cart/"+url.PathEscape(lineID), body, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// RemoveCartItem deletes one cart line.
func (c *Client) RemoveCartItem(ctx context.Context, lineID string) ([]RawCartItem, error) {
	var payload cartPayload
	if err := c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(lineID), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) ([]RawCartItem, error) {
	var payload cartPayload
	if err := c.do(ctx, http.MethodDelete, "/cart", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// MergeCart folds the guest session's cart into the authenticated user's
// cart. Requires a stored bearer credential.
func (c *Client) MergeCart(ctx context.Context, sessionID string) error {
	body := map[string]any{"session_id": sessionID}
	return c.do(ctx, http.MethodPost, "/cart/merge", body, nil)
}

// Login authenticates the shopper.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]any{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// Register creates a new shopper account.
func (c *Client) Register(ctx context.Context, name, email, password string) (LoginResult, error) {
	body := map[string]any{"name": name, "email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// Logout invalidates the bearer credential remotely.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// CurrentUser fetches the authenticated user record. An AUTH_ERROR result
// means the token was rejected and must be invalidated locally.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/auth/user", nil, &raw); err != nil {
		return domain.User{}, err
	}
	var envelope struct {
		User domain.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.User.ID != "" {
		return envelope.User, nil
	}
	// Some backend versions return the user object unwrapped.
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return domain.User{}, util.NewNetworkError(fmt.Errorf("parsing user: %w", err))
	}
	return user, nil
}

// ProductFilter narrows ListProducts results.
type ProductFilter struct {
	Category   string
	Collection string
	Sort       string
}

func (f ProductFilter) query() string {
	values := url.Values{}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.Collection != "" {
		values.Set("collection", f.Collection)
	}
	if f.Sort != "" {
		values.Set("sort", f.Sort)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// GetProduct fetches one raw product payload by slug.
func (c *Client) GetProduct(ctx context.Context, slug string) (RawProduct, error) {
	var raw RawProduct
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(slug), nil, &raw); err != nil {
		return RawProduct{}, err
	}
	return raw, nil
}

// ListProducts fetches raw product payloads matching the filter.
func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) ([]RawProduct, error) {
	var payload productsPayload
	if err := c.do(ctx, http.MethodGet, "/products"+filter.query(), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

// Wishlist fetches the shopper's wishlist as raw product payloads.
func (c *Client) Wishlist(ctx context.Context) ([]RawProduct, error) {
	var payload productsPayload
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

// ToggleWishlist adds or removes a product from the wishlist.
func (c *Client) ToggleWishlist(ctx context.Context, productID string) error {
	body := map[string]any{"product_id": productID}
	return c.do(ctx, http.MethodPost, "/wishlist/toggle", body, nil)
}

// SubscribeNewsletter registers an email for the newsletter.
func (c *Client) SubscribeNewsletter(ctx context.Context, email, name string) error {
	body := map[string]any{"email": email, "name": name}
	return c.do(ctx, http.MethodPost, "/newsletter/subscribe", body, nil)
}
