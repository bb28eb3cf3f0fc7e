package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/api"
	"storefront/internal/types"
)

func TestWishlistSnapshot_Contains(t *testing.T) {
	snap := NewWishlistSnapshot([]types.WishlistEntry{
		{ID: 1, UserID: 7, ProductID: 3},
		{ID: 2, UserID: 7, ProductID: 9},
	})

	if !snap.Contains(3) {
		t.Error("expected product 3 in wishlist")
	}
	if snap.Contains(4) {
		t.Error("did not expect product 4 in wishlist")
	}
	if snap.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", snap.Len())
	}
}

func TestLoadWishlist_UnauthenticatedIsEmptyNoCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	snap, err := LoadWishlist(context.Background(), api.NewClient(srv.URL, nil), 0)
	if err != nil {
		t.Fatalf("LoadWishlist failed: %v", err)
	}
	if snap.Len() != 0 || called {
		t.Error("expected empty snapshot with no network call")
	}
}

func TestLoadWishlist_FetchesForUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/7/wishlist" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"user_id":7,"product_id":3}]`))
	}))
	defer srv.Close()

	snap, err := LoadWishlist(context.Background(), api.NewClient(srv.URL, nil), 7)
	if err != nil {
		t.Fatalf("LoadWishlist failed: %v", err)
	}
	if !snap.Contains(3) {
		t.Error("expected product 3 in fetched snapshot")
	}
}

func TestFilterByCategory(t *testing.T) {
	products := []types.Product{
		{ID: 1, Category: &types.Category{ID: 2, Name: "Phones"}},
		{ID: 2, Category: &types.Category{ID: 3, Name: "Laptops"}},
		{ID: 3}, // uncategorized
	}

	all := FilterByCategory(products, 0)
	if len(all) != 3 {
		t.Errorf("zero category filters nothing: got %d", len(all))
	}

	phones := FilterByCategory(products, 2)
	if len(phones) != 1 || phones[0].ID != 1 {
		t.Errorf("expected only product 1, got %+v", phones)
	}
}
