// Package cart keeps the current user's cart lines synchronized with the
// server. The store is the single source of truth on the client and its
// contents always equal the last successful server response: every mutation
// is followed by a full Refresh, and a failed mutation never touches local
// state. Totals are the only locally derived values, recomputed as pure folds
// over the just-synchronized snapshot.
package cart

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/api"
	"storefront/internal/logging"
	"storefront/internal/session"
	"storefront/internal/types"
)

// ErrSignInRequired is returned by mutations attempted without a session.
// No network call is made in that case.
var ErrSignInRequired = errors.New("please sign in to manage your cart")

// Store mediates all cart mutations through the gateway.
type Store struct {
	client  *api.Client
	session *session.Store

	mu    sync.RWMutex
	items []types.CartItem
}

// New creates a cart store bound to the given session.
func New(client *api.Client, sess *session.Store) *Store {
	return &Store{client: client, session: sess}
}

// Refresh fetches all lines for the current user's cart and replaces local
// state wholesale. When unauthenticated it clears to empty without a call.
// The cart id is the user id, matching the service's per-user cart convention.
func (s *Store) Refresh(ctx context.Context) error {
	userID := s.session.UserID()
	if userID == 0 {
		s.setItems(nil)
		return nil
	}

	items, err := s.client.CartItems(ctx, userID)
	if err != nil {
		logging.CartError("refresh failed: %v", err)
		return err
	}

	s.setItems(items)
	logging.Cart("refreshed: %d lines", len(items))
	return nil
}

// AddItem creates or increments a line, then re-synchronizes. Requires
// authentication; without it ErrSignInRequired is returned before any call.
func (s *Store) AddItem(ctx context.Context, productID, quantity int) error {
	userID := s.session.UserID()
	if userID == 0 {
		return ErrSignInRequired
	}
	if quantity < 1 {
		quantity = 1
	}

	if err := s.client.AddCartItem(ctx, userID, productID, quantity); err != nil {
		logging.CartError("add product %d failed: %v", productID, err)
		return err
	}
	logging.Cart("added product %d x%d", productID, quantity)
	return s.Refresh(ctx)
}

// UpdateQuantity patches a line's quantity, then re-synchronizes. Quantities
// below 1 and unauthenticated calls are silent no-ops with no network call.
func (s *Store) UpdateQuantity(ctx context.Context, itemID, quantity int) error {
	userID := s.session.UserID()
	if userID == 0 || quantity < 1 {
		return nil
	}

	if err := s.client.UpdateCartItem(ctx, userID, itemID, quantity); err != nil {
		logging.CartError("update line %d failed: %v", itemID, err)
		return err
	}
	return s.Refresh(ctx)
}

// RemoveItem deletes a line, then re-synchronizes.
func (s *Store) RemoveItem(ctx context.Context, itemID int) error {
	userID := s.session.UserID()
	if userID == 0 {
		return nil
	}

	if err := s.client.RemoveCartItem(ctx, userID, itemID); err != nil {
		logging.CartError("remove line %d failed: %v", itemID, err)
		return err
	}
	logging.Cart("removed line %d", itemID)
	return s.Refresh(ctx)
}

// Clear drops local state, e.g. on logout. No server call.
func (s *Store) Clear() {
	s.setItems(nil)
}

// Items returns a copy of the current snapshot.
func (s *Store) Items() []types.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// IsEmpty reports whether the snapshot has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) == 0
}

// TotalPrice folds the line totals of the current snapshot.
func (s *Store) TotalPrice() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, item := range s.items {
		total += item.TotalPrice
	}
	return total
}

// TotalItems folds the quantities of the current snapshot.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Store) setItems(items []types.CartItem) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}
