package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simares/storefront/internal/config"
	"github.com/simares/storefront/pkg/util"
)

type stubIdentity struct {
	sid   string
	token string
}

func (s stubIdentity) GetSessionID() string { return s.sid }

func (s stubIdentity) AuthToken() (string, bool) { return s.token, s.token != "" }

func testClient(srv *httptest.Server, id stubIdentity) *Client {
	cfg := config.CommerceConfig{
		BaseURL:        srv.URL,
		TimeoutSeconds: 5,
		UserAgent:      "storefront-client/test",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
	return NewClient(cfg, id, zap.NewNop())
}

func TestClientSendsSessionAndBearerHeaders(t *testing.T) {
	var gotSession, gotAuth, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = r.Header.Get("X-Session-ID")
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	}))
	defer srv.Close()

	client := testClient(srv, stubIdentity{sid: "sid-1", token: "tok-1"})
	_, err := client.GetCart(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sid-1", gotSession)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "storefront-client/test", gotAgent)
}

func TestClientOmitsBearerWhenAnonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	}))
	defer srv.Close()

	client := testClient(srv, stubIdentity{sid: "sid-1"})
	_, err := client.GetCart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestAddToCartPayloadAndResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/cart", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "v2", body["product_variant_id"])
		assert.Equal(t, float64(2), body["quantity"])

		_ = json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
			{"id": 11, "product_id": "p1", "name": "Riviera", "price": 90, "quantity": 2, "selected_color": "Navy", "selected_size": "M"},
		}})
	}))
	defer srv.Close()

	client := testClient(srv, stubIdentity{sid: "sid-1"})
	items, err := client.AddToCart(context.Background(), "v2", 2)
	require.NoError(t, err)

	require.Len(t, items, 1)
	line := items[0].Canonical()
	assert.Equal(t, "11", line.ID)
	assert.Equal(t, "p1", line.ProductID)
	assert.Equal(t, "Navy", line.SelectedColor)
	assert.Equal(t, 2, line.Quantity)
}

func TestClientAcceptsBareArrayCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "l1", "quantity": 1, "price": 50}]`))
	}))
	defer srv.Close()

	client := testClient(srv, stubIdentity{sid: "sid-1"})
	items, err := client.GetCart(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "l1", items[0].ID.String())
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"unauthorized", http.StatusUnauthorized, util.IsAuthError},
		{"not found", http.StatusNotFound, util.IsNotFound},
		{"server error", http.StatusInternalServerError, util.IsNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{"message": "nope"})
			}))
			defer srv.Close()

			client := testClient(srv, stubIdentity{sid: "sid-1"})
			_, err := client.GetCart(context.Background())
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}

func TestClientTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := testClient(srv, stubIdentity{sid: "sid-1"})
	_, err := client.GetCart(context.Background())
	require.Error(t, err)
	assert.True(t, util.IsNetworkError(err))
}

func TestMergeCartSendsSessionID(t *testing.T) {
	var merged string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart/merge", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		merged, _ = body["session_id"].(string)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := testClient(srv, stubIdentity{sid: "sid-1", token: "tok-1"})
	require.NoError(t, client.MergeCart(context.Background(), "sid-1"))
	assert.Equal(t, "sid-1", merged)
}

func TestCurrentUserAcceptsBothEnvelopes(t *testing.T) {
	payloads := []string{
		`{"user": {"id": "u1", "name": "Dana", "email": "dana@example.com"}}`,
		`{"id": "u1", "name": "Dana", "email": "dana@example.com"}`,
	}
	for _, payload := range payloads {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(payload))
		}))

		client := testClient(srv, stubIdentity{sid: "sid-1", token: "tok-1"})
		user, err := client.CurrentUser(context.Background())
		srv.Close()

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	}
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "product not found"})
	}))
	defer srv.Close()

	client := testClient(srv, stubIdentity{sid: "sid-1"})
	_, err := client.GetProduct(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, util.IsNotFound(err))
}
