// Package cart owns the local cart mirror: the client's server-derived
// snapshot of cart contents. Every mutation goes to the remote cart API and
// the mirror is replaced wholesale from the response; on failure the mirror
// is left untouched for the caller to retry.
package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/simares/storefront/internal/commerce"
	"github.com/simares/storefront/internal/domain"
	"github.com/simares/storefront/pkg/util"
)

// API is the remote cart surface the synchronizer drives. Implemented by
// *commerce.Client.
type API interface {
	GetCart(ctx context.Context) ([]commerce.RawCartItem, error)
	AddToCart(ctx context.Context, variantID string, quantity int) ([]commerce.RawCartItem, error)
	UpdateCartItem(ctx context.Context, lineID string, quantity int) ([]commerce.RawCartItem, error)
	RemoveCartItem(ctx context.Context, lineID string) ([]commerce.RawCartItem, error)
	ClearCart(ctx context.Context) ([]commerce.RawCartItem, error)
}

// Synchronizer mirrors the remote cart. The server is authoritative for
// merged quantities, price snapshots and line identifiers; the mirror never
// speculates. Overlapping mutations on the same line are prevented by the
// caller checking Pending before dispatch; when they happen anyway, the last
// response to arrive wins.
type Synchronizer struct {
	api    API
	logger *zap.Logger

	mu      sync.Mutex
	mirror  domain.Cart
	pending map[string]bool
}

// NewSynchronizer builds a synchronizer with an empty mirror.
func NewSynchronizer(api API, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{
		api:     api,
		logger:  logger,
		mirror:  domain.NewCart(nil),
		pending: make(map[string]bool),
	}
}

// Cart returns a copy of the mirror.
func (s *Synchronizer) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.mirror
	cart.Items = append([]domain.CartItem{}, s.mirror.Items...)
	return cart
}

// Pending reports whether a mutation for the given line is in flight. The
// UI disables the line's controls while this is true.
func (s *Synchronizer) Pending(lineID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[lineID]
}

func (s *Synchronizer) markPending(key string) {
	s.mu.Lock()
	s.pending[key] = true
	s.mu.Unlock()
}

func (s *Synchronizer) clearPending(key string) {
	s.mu.Lock()
	delete(s.pending, key)
	s.mu.Unlock()
}

// replace swaps the mirror for the server's item list, recomputing totals.
func (s *Synchronizer) replace(items []commerce.RawCartItem) {
	canonical := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		canonical = append(canonical, item.Canonical())
	}
	s.mu.Lock()
	s.mirror = domain.NewCart(canonical)
	s.mu.Unlock()
}

// AddItem adds a purchasable variant to the remote cart. An empty variantID
// is a caller logic error and fails before any network call. Quantities
// below 1 are clamped; decrementing below 1 is a removal, not an update.
func (s *Synchronizer) AddItem(ctx context.Context, variantID string, quantity int) error {
	if variantID == "" {
		return util.NewNoVariantSelected()
	}
	if quantity < 1 {
		quantity = 1
	}

	key := "add:" + variantID
	s.markPending(key)
	defer s.clearPending(key)

	items, err := s.api.AddToCart(ctx, variantID, quantity)
	if err != nil {
		s.logger.Warn("add to cart failed", zap.String("variant_id", variantID), zap.Error(err))
		return err
	}
	s.replace(items)
	return nil
}

// UpdateQuantity changes one line's quantity. Sub-1 input is clamped to 1
// before dispatch.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	if lineID == "" {
		return util.NewValidationError("line id required", nil)
	}
	if quantity < 1 {
		quantity = 1
	}

	s.markPending(lineID)
	defer s.clearPending(lineID)

	items, err := s.api.UpdateCartItem(ctx, lineID, quantity)
	if err != nil {
		s.logger.Warn("update quantity failed", zap.String("line_id", lineID), zap.Error(err))
		return err
	}
	s.replace(items)
	return nil
}

// RemoveItem deletes one line.
func (s *Synchronizer) RemoveItem(ctx context.Context, lineID string) error {
	if lineID == "" {
		return util.NewValidationError("line id required", nil)
	}

	s.markPending(lineID)
	defer s.clearPending(lineID)

	items, err := s.api.RemoveCartItem(ctx, lineID)
	if err != nil {
		s.logger.Warn("remove item failed", zap.String("line_id", lineID), zap.Error(err))
		return err
	}
	s.replace(items)
	return nil
}

// Clear empties the cart remotely and locally.
func (s *Synchronizer) Clear(ctx context.Context) error {
	items, err := s.api.ClearCart(ctx)
	if err != nil {
		s.logger.Warn("clear cart failed", zap.Error(err))
		return err
	}
	s.replace(items)
	return nil
}

// Refresh unconditionally re-fetches the cart and replaces the mirror. Used
// after login/merge and on cold start.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	items, err := s.api.GetCart(ctx)
	if err != nil {
		return err
	}
	s.replace(items)
	return nil
}
