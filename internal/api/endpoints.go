package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"storefront/internal/types"
)

// Authentication

// Signup creates an account and returns the fresh token and user.
func (c *Client) Signup(ctx context.Context, req types.SignupRequest) (types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.request(ctx, http.MethodPost, "/signup", req, &out)
	return out, err
}

// Login exchanges credentials for a token and user.
func (c *Client) Login(ctx context.Context, creds types.Credentials) (types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.request(ctx, http.MethodPost, "/login", creds, &out)
	return out, err
}

// Products

// Products lists the catalog, optionally filtered to a category.
func (c *Client) Products(ctx context.Context, categoryID string) ([]types.Product, error) {
	endpoint := "/products"
	if categoryID != "" {
		endpoint += "?" + url.Values{"category_id": {categoryID}}.Encode()
	}
	var out []types.Product
	err := c.request(ctx, http.MethodGet, endpoint, nil, &out)
	return out, err
}

// Product fetches a single product with its variants.
func (c *Client) Product(ctx context.Context, id int) (types.Product, error) {
	var out types.Product
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out)
	return out, err
}

// Categories lists all product categories.
func (c *Client) Categories(ctx context.Context) ([]types.Category, error) {
	var out []types.Category
	err := c.request(ctx, http.MethodGet, "/categories", nil, &out)
	return out, err
}

// User

// Profile fetches the current user's profile. Requires a token.
func (c *Client) Profile(ctx context.Context) (types.User, error) {
	var out types.User
	err := c.request(ctx, http.MethodGet, "/users/profile", nil, &out)
	return out, err
}

// UpdateProfile patches mutable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, id int, update types.ProfileUpdate) (types.User, error) {
	var out types.User
	err := c.request(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", id), update, &out)
	return out, err
}

// Cart

type cartItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type cartItemPatch struct {
	Quantity int `json:"quantity"`
}

// CartItems lists all lines of the given cart.
func (c *Client) CartItems(ctx context.Context, cartID int) ([]types.CartItem, error) {
	var out []types.CartItem
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/carts/%d/cart_items", cartID), nil, &out)
	return out, err
}

// AddCartItem creates or increments a line in the cart.
func (c *Client) AddCartItem(ctx context.Context, cartID, productID, quantity int) error {
	body := cartItemRequest{ProductID: productID, Quantity: quantity}
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/carts/%d/cart_items", cartID), body, nil)
}

// UpdateCartItem sets a line's quantity.
func (c *Client) UpdateCartItem(ctx context.Context, cartID, itemID, quantity int) error {
	body := cartItemPatch{Quantity: quantity}
	return c.request(ctx, http.MethodPatch, fmt.Sprintf("/carts/%d/cart_items/%d", cartID, itemID), body, nil)
}

// RemoveCartItem deletes a line from the cart.
func (c *Client) RemoveCartItem(ctx context.Context, cartID, itemID int) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/carts/%d/cart_items/%d", cartID, itemID), nil, nil)
}

// Wishlist

// Wishlist returns the user's wishlist entries.
func (c *Client) Wishlist(ctx context.Context, userID int) ([]types.WishlistEntry, error) {
	var out []types.WishlistEntry
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/users/%d/wishlist", userID), nil, &out)
	return out, err
}

// ToggleWishlist flips wishlist membership for a product.
func (c *Client) ToggleWishlist(ctx context.Context, productID int) (types.WishlistToggleResult, error) {
	var out types.WishlistToggleResult
	err := c.request(ctx, http.MethodPost, fmt.Sprintf("/products/%d/toggle_wishlist", productID), nil, &out)
	return out, err
}

// Orders

// Orders lists the user's order history.
func (c *Client) Orders(ctx context.Context) ([]types.Order, error) {
	var out []types.Order
	err := c.request(ctx, http.MethodGet, "/orders", nil, &out)
	return out, err
}

// Order fetches a single order with its lines.
func (c *Client) Order(ctx context.Context, id int) (types.Order, error) {
	var out types.Order
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &out)
	return out, err
}

// CreateOrder places an order from the current cart.
func (c *Client) CreateOrder(ctx context.Context, req types.OrderRequest) (types.Order, error) {
	var out types.Order
	err := c.request(ctx, http.MethodPost, "/orders", req, &out)
	return out, err
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, id int) (types.Order, error) {
	var out types.Order
	err := c.request(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/cancel", id), nil, &out)
	return out, err
}

// Checkout sessions

// CreateCheckoutSession starts a hosted checkout session.
func (c *Client) CreateCheckoutSession(ctx context.Context) (types.CheckoutSession, error) {
	var out types.CheckoutSession
	err := c.request(ctx, http.MethodPost, "/checkout", nil, &out)
	return out, err
}

// CheckoutSessionStatus fetches the state of a checkout session.
func (c *Client) CheckoutSessionStatus(ctx context.Context, sessionID string) (types.CheckoutSession, error) {
	var out types.CheckoutSession
	err := c.request(ctx, http.MethodGet, "/checkout/session/"+url.PathEscape(sessionID), nil, &out)
	return out, err
}
