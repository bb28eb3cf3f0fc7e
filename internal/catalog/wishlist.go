package catalog

import (
	"context"

	"storefront/internal/api"
	"storefront/internal/types"
)

// WishlistSnapshot is the last-fetched wishlist for a user. Membership checks
// are linear scans against this snapshot, so the answer can be stale until
// the screen re-fetches.
type WishlistSnapshot struct {
	entries []types.WishlistEntry
}

// LoadWishlist fetches the user's wishlist. An unauthenticated (zero) user id
// yields an empty snapshot without a call.
func LoadWishlist(ctx context.Context, client *api.Client, userID int) (WishlistSnapshot, error) {
	if userID == 0 {
		return WishlistSnapshot{}, nil
	}
	entries, err := client.Wishlist(ctx, userID)
	if err != nil {
		return WishlistSnapshot{}, err
	}
	return WishlistSnapshot{entries: entries}, nil
}

// NewWishlistSnapshot wraps already-fetched entries.
func NewWishlistSnapshot(entries []types.WishlistEntry) WishlistSnapshot {
	return WishlistSnapshot{entries: entries}
}

// Contains reports membership of productID in the snapshot.
func (s WishlistSnapshot) Contains(productID int) bool {
	for _, e := range s.entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// Entries returns the snapshot's entries.
func (s WishlistSnapshot) Entries() []types.WishlistEntry {
	return s.entries
}

// Len returns the number of wished products.
func (s WishlistSnapshot) Len() int {
	return len(s.entries)
}

// FilterByCategory returns the products belonging to the given category.
// A zero categoryID returns the input unchanged.
func FilterByCategory(products []types.Product, categoryID int) []types.Product {
	if categoryID == 0 {
		return products
	}
	var out []types.Product
	for _, p := range products {
		if p.Category != nil && p.Category.ID == categoryID {
			out = append(out, p)
		}
	}
	return out
}
