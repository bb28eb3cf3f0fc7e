// Package types defines the wire-level data transfer objects shared across
// the storefront client. These mirror the remote commerce API's JSON payloads
// and are passed through without local validation beyond optional-field access.
package types

import "fmt"

// User is the authenticated account profile returned by the API.
type User struct {
	ID              int    `json:"id"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone,omitempty"`
	ShippingAddress string `json:"shipping_address,omitempty"`
	BillingAddress  string `json:"billing_address,omitempty"`
	Admin           bool   `json:"admin,omitempty"`
}

// Credentials are the login parameters.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest carries the fields for account creation.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthResponse is returned by POST /login and POST /signup.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ProfileUpdate carries the mutable profile fields for PATCH /users/{id}.
// Pointers distinguish "leave unchanged" from "set to empty".
type ProfileUpdate struct {
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ShippingAddress *string `json:"shipping_address,omitempty"`
	BillingAddress  *string `json:"billing_address,omitempty"`
}

// Category groups products.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductVariant is a purchasable option of a product (size, color, storage)
// with its own stock and price delta relative to the base price.
type ProductVariant struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`  // variant group, e.g. "Storage"
	Value         string `json:"value"` // e.g. "256GB"
	PriceModifier int64  `json:"price_modifier"`
	StockQuantity int    `json:"stock_quantity"`
}

// Product is a catalog entry. Price and modifiers are integer cents.
type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         int64            `json:"price"`
	SKU           string           `json:"sku,omitempty"`
	StockQuantity int              `json:"stock_quantity"`
	InStock       bool             `json:"in_stock"`
	Category      *Category        `json:"category,omitempty"`
	Variants      []ProductVariant `json:"product_variants,omitempty"`
}

// ProductSnapshot is the embedded product copy carried on a cart line.
type ProductSnapshot struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
}

// CartItem is one product+quantity line in the user's in-progress cart.
// TotalPrice is computed server-side; the client never derives it locally.
type CartItem struct {
	ID         int             `json:"id"`
	CartID     int             `json:"cart_id"`
	ProductID  int             `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice int64           `json:"total_price"`
	Product    ProductSnapshot `json:"product"`
}

// WishlistEntry marks a product as wished by a user. The API embeds the
// product for list rendering.
type WishlistEntry struct {
	ID        int      `json:"id"`
	UserID    int      `json:"user_id"`
	ProductID int      `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}

// Order statuses as reported by the API.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderShipped   = "shipped"
	OrderCancelled = "cancelled"
)

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID        int             `json:"id"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice int64           `json:"unit_price"`
	Product   ProductSnapshot `json:"product"`
}

// Order is a placed order with its lines.
type Order struct {
	ID              int         `json:"id"`
	Status          string      `json:"status"`
	TotalPrice      int64       `json:"total_price"`
	ShippingAddress string      `json:"shipping_address"`
	BillingAddress  string      `json:"billing_address"`
	CreatedAt       string      `json:"created_at,omitempty"`
	Items           []OrderItem `json:"order_items,omitempty"`
}

// OrderRequest is the payload for POST /orders.
type OrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
	Phone           string `json:"phone"`
	PaymentMethod   string `json:"payment_method"`
	IdempotencyKey  string `json:"idempotency_key,omitempty"`
}

// Payment methods accepted by the checkout form. Card is demo-only and is
// never charged.
const (
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentCard           = "card"
)

// CheckoutSession is returned by POST /checkout and GET /checkout/session/{id}.
type CheckoutSession struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
}

// WishlistToggleResult is returned by POST /products/{id}/toggle_wishlist.
type WishlistToggleResult struct {
	Message string `json:"message"`
	Added   bool   `json:"added"`
}

// FormatPrice renders integer cents as a dollar string, matching the way the
// storefront displays every price.
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
