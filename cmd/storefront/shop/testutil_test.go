package shop

import (
	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/session"
	"storefront/internal/types"
)

// newTestModel builds a model wired to stores that never reach a server.
// Handlers under test either stay local or return commands that are not run.
func newTestModel() Model {
	client := api.NewClient("http://127.0.0.1:0", nil)
	sess := session.New(client)
	cartStore := cart.New(client, sess)
	flow := checkout.New(client, cartStore)

	m := New(Config{
		Client:   client,
		Session:  sess,
		Cart:     cartStore,
		Checkout: flow,
		Theme:    "light",
	})
	m.loading = false
	return m
}

// signedInTestModel is newTestModel with an established session.
func signedInTestModel() Model {
	m := newTestModel()
	m.session.SetUser(types.User{
		ID:        7,
		Email:     "shopper@example.com",
		FirstName: "Sam",
		LastName:  "Shopper",
	})
	return m
}

func sampleProducts() []types.Product {
	return []types.Product{
		{ID: 1, Name: "Laptop", Price: 199999, StockQuantity: 4, InStock: true, Category: &types.Category{ID: 1, Name: "Electronics"}},
		{ID: 2, Name: "Mug", Price: 1299, StockQuantity: 50, InStock: true, Category: &types.Category{ID: 2, Name: "Kitchen"}},
		{ID: 3, Name: "Poster", Price: 899, StockQuantity: 0, InStock: false, Category: &types.Category{ID: 2, Name: "Kitchen"}},
	}
}

func sampleCategories() []types.Category {
	return []types.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Kitchen"},
	}
}
