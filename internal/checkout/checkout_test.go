package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/session"
	"storefront/internal/types"
)

type memTokens struct {
	token string
}

func (m *memTokens) Token() (string, error)      { return m.token, nil }
func (m *memTokens) SetToken(token string) error { m.token = token; return nil }

// fakeShop serves cart lines and records order creations.
type fakeShop struct {
	mu         sync.Mutex
	cartItems  []types.CartItem
	orderCalls int
	lastOrder  types.OrderRequest
	failOrders bool
}

func (f *fakeShop) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(f.cartItems)

		case r.Method == http.MethodPost && r.URL.Path == "/orders":
			f.orderCalls++
			json.NewDecoder(r.Body).Decode(&f.lastOrder)
			if f.failOrders {
				http.Error(w, "payment declined", http.StatusUnprocessableEntity)
				return
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(types.Order{ID: 42, Status: types.OrderPending})
		}
	})
}

func (f *fakeShop) orders() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderCalls
}

func newTestFlow(t *testing.T, withItems bool) (*Flow, *cart.Store, *fakeShop) {
	t.Helper()
	fake := &fakeShop{}
	if withItems {
		fake.cartItems = []types.CartItem{
			{ID: 1, ProductID: 3, Quantity: 2, TotalPrice: 598},
		}
	}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, &memTokens{})
	client.SetToken("t1")
	sess := session.New(client)
	sess.SetUser(types.User{ID: 7})

	cartStore := cart.New(client, sess)
	require.NoError(t, cartStore.Refresh(context.Background()))

	return New(client, cartStore), cartStore, fake
}

func validForm() Form {
	return Form{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
		Phone:           "555-0100",
	}
}

func TestEnter_EmptyCartRejected(t *testing.T) {
	flow, _, _ := newTestFlow(t, false)

	err := flow.Enter()

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateIdle, flow.State())
}

func TestEnter_ArmsFreshKey(t *testing.T) {
	flow, _, _ := newTestFlow(t, true)

	require.NoError(t, flow.Enter())
	first := flow.IdempotencyKey()
	require.NotEmpty(t, first)

	require.NoError(t, flow.Enter())
	assert.NotEqual(t, first, flow.IdempotencyKey(), "re-entry mints a new key")
}

func TestSubmit_MissingFieldsNeverCallServer(t *testing.T) {
	flow, _, fake := newTestFlow(t, true)
	require.NoError(t, flow.Enter())

	forms := []Form{
		{BillingAddress: "b", Phone: "p"},
		{ShippingAddress: "s", Phone: "p"},
		{ShippingAddress: "s", BillingAddress: "b"},
		{ShippingAddress: "  ", BillingAddress: "b", Phone: "p"},
	}
	for _, form := range forms {
		_, err := flow.Submit(context.Background(), form)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, StateIdle, flow.State(), "validation failure returns to idle")
	}

	assert.Zero(t, fake.orders(), "order creation never called")
}

func TestSubmit_SuccessCompletes(t *testing.T) {
	flow, _, fake := newTestFlow(t, true)
	require.NoError(t, flow.Enter())

	order, err := flow.Submit(context.Background(), validForm())

	require.NoError(t, err)
	assert.Equal(t, 42, order.ID)
	assert.Equal(t, StateCompleted, flow.State())
	assert.Equal(t, 1, fake.orders())
	assert.Equal(t, types.PaymentCashOnDelivery, fake.lastOrder.PaymentMethod, "default payment method")
	assert.Equal(t, flow.IdempotencyKey(), fake.lastOrder.IdempotencyKey)
}

func TestSubmit_FailureReturnsToIdleAndKeepsKey(t *testing.T) {
	flow, _, fake := newTestFlow(t, true)
	require.NoError(t, flow.Enter())
	key := flow.IdempotencyKey()

	fake.failOrders = true
	_, err := flow.Submit(context.Background(), validForm())

	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusUnprocessableEntity))
	assert.Equal(t, StateIdle, flow.State())
	assert.Equal(t, key, flow.IdempotencyKey(), "retry reuses the armed key")

	// Retry after the transient failure carries the same key.
	fake.failOrders = false
	_, err = flow.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, key, fake.lastOrder.IdempotencyKey)
}

func TestSubmit_RejectedWhileInFlight(t *testing.T) {
	flow, _, _ := newTestFlow(t, true)
	require.NoError(t, flow.Enter())

	// Force the in-flight state directly; the HTTP round-trip in tests is too
	// fast to race against reliably.
	flow.setState(StateSubmitting)

	_, err := flow.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrSubmitInFlight)
}

func TestSubmit_CardPaymentPassedThrough(t *testing.T) {
	flow, _, fake := newTestFlow(t, true)
	require.NoError(t, flow.Enter())

	form := validForm()
	form.PaymentMethod = types.PaymentCard
	_, err := flow.Submit(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, types.PaymentCard, fake.lastOrder.PaymentMethod)
}
