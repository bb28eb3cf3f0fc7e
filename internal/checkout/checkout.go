// Package checkout drives the order placement flow: idle → validating →
// submitting → completed, falling back to idle on any failure. The flow is
// unreachable with an empty cart, and all three contact fields are required
// before any network call is made.
//
// Each armed flow carries an idempotency key so that a repeated submit of the
// same checkout cannot create duplicate orders; a submit while one is already
// in flight is rejected outright.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/logging"
	"storefront/internal/types"
)

// State is the flow's current phase.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateCompleted
)

// String returns the display name for each state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ErrEmptyCart is returned by Enter when there is nothing to check out;
// the caller exits back to the previous screen with a notice.
var ErrEmptyCart = errors.New("cart is empty, add items before checkout")

// ErrSubmitInFlight rejects a duplicate submit while one is processing.
var ErrSubmitInFlight = errors.New("order submission already in progress")

// ValidationError reports an empty required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Fields the form submits.
type Form struct {
	ShippingAddress string
	BillingAddress  string
	Phone           string
	PaymentMethod   string
}

// Flow is the checkout state machine for one visit to the checkout screen.
type Flow struct {
	client *api.Client
	cart   *cart.Store

	mu      sync.Mutex
	state   State
	idemKey string
}

// New creates an idle, unarmed flow.
func New(client *api.Client, cartStore *cart.Store) *Flow {
	return &Flow{client: client, cart: cartStore}
}

// Enter guards entry to the checkout screen. With an empty cart it fails
// immediately; otherwise it (re)arms the flow with a fresh idempotency key.
func (f *Flow) Enter() error {
	if f.cart.IsEmpty() {
		return ErrEmptyCart
	}

	f.mu.Lock()
	f.state = StateIdle
	f.idemKey = uuid.NewString()
	f.mu.Unlock()

	logging.Checkout("entered checkout, key %s", f.IdempotencyKey())
	return nil
}

// State returns the current phase.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// IdempotencyKey returns the key armed by the last Enter.
func (f *Flow) IdempotencyKey() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.idemKey
}

// Submit validates the form and places the order. Validation failures and
// server failures both land the flow back in idle; success lands in
// completed. The armed key accompanies every attempt of this checkout, so a
// retry after a failure reuses it and the server can deduplicate.
func (f *Flow) Submit(ctx context.Context, form Form) (types.Order, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return types.Order{}, ErrSubmitInFlight
	}
	f.state = StateValidating
	key := f.idemKey
	f.mu.Unlock()

	if err := validate(form); err != nil {
		f.setState(StateIdle)
		return types.Order{}, err
	}

	method := form.PaymentMethod
	if method == "" {
		method = types.PaymentCashOnDelivery
	}

	f.setState(StateSubmitting)
	order, err := f.client.CreateOrder(ctx, types.OrderRequest{
		ShippingAddress: form.ShippingAddress,
		BillingAddress:  form.BillingAddress,
		Phone:           form.Phone,
		PaymentMethod:   method,
		IdempotencyKey:  key,
	})
	if err != nil {
		logging.Checkout("order submission failed: %v", err)
		f.setState(StateIdle)
		return types.Order{}, err
	}

	logging.Checkout("order %d placed", order.ID)
	f.setState(StateCompleted)
	return order, nil
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func validate(form Form) error {
	if strings.TrimSpace(form.ShippingAddress) == "" {
		return &ValidationError{Field: "shipping address"}
	}
	if strings.TrimSpace(form.BillingAddress) == "" {
		return &ValidationError{Field: "billing address"}
	}
	if strings.TrimSpace(form.Phone) == "" {
		return &ValidationError{Field: "phone number"}
	}
	return nil
}
