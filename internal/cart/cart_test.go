package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/api"
	"storefront/internal/session"
	"storefront/internal/types"
)

type memTokens struct {
	token string
}

func (m *memTokens) Token() (string, error)      { return m.token, nil }
func (m *memTokens) SetToken(token string) error { m.token = token; return nil }

// fakeCart is an in-memory cart service covering the cart_items routes.
type fakeCart struct {
	mu       sync.Mutex
	items    []types.CartItem
	requests []string
	nextID   int
	failNext bool
}

func (f *fakeCart) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)

		if f.failNext {
			f.failNext = false
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}

		switch {
		case r.Method == http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(f.items)

		case r.Method == http.MethodPost:
			var body struct {
				ProductID int `json:"product_id"`
				Quantity  int `json:"quantity"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			f.nextID++
			f.items = append(f.items, types.CartItem{
				ID:         f.nextID,
				ProductID:  body.ProductID,
				Quantity:   body.Quantity,
				TotalPrice: int64(body.Quantity) * 299,
				Product:    types.ProductSnapshot{ID: body.ProductID, Price: 299},
			})
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(f.items[len(f.items)-1])

		case r.Method == http.MethodPatch:
			var body struct {
				Quantity int `json:"quantity"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			id := pathID(r.URL.Path)
			for i := range f.items {
				if f.items[i].ID == id {
					f.items[i].Quantity = body.Quantity
					f.items[i].TotalPrice = int64(body.Quantity) * 299
				}
			}
			json.NewEncoder(w).Encode(map[string]bool{"ok": true})

		case r.Method == http.MethodDelete:
			id := pathID(r.URL.Path)
			kept := f.items[:0]
			for _, it := range f.items {
				if it.ID != id {
					kept = append(kept, it)
				}
			}
			f.items = kept
			w.WriteHeader(http.StatusNoContent)
		}
	})
}

func pathID(path string) int {
	parts := strings.Split(path, "/")
	var id int
	fmt.Sscanf(parts[len(parts)-1], "%d", &id)
	return id
}

func (f *fakeCart) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestStore(t *testing.T, authenticated bool) (*Store, *fakeCart) {
	t.Helper()
	fake := &fakeCart{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, &memTokens{})
	sess := session.New(client)
	if authenticated {
		client.SetToken("t1")
		sess.SetUser(types.User{ID: 7, Email: "a@b.com"})
	}
	return New(client, sess), fake
}

func TestAddItem_Unauthenticated(t *testing.T) {
	store, fake := newTestStore(t, false)

	err := store.AddItem(context.Background(), 3, 1)

	assert.ErrorIs(t, err, ErrSignInRequired)
	assert.Zero(t, fake.requestCount(), "no network call without a session")
	assert.True(t, store.IsEmpty())
}

func TestAddItem_RefreshesAfterMutation(t *testing.T) {
	store, fake := newTestStore(t, true)

	require.NoError(t, store.AddItem(context.Background(), 3, 2))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	// POST followed by the unconditional GET refresh
	require.GreaterOrEqual(t, fake.requestCount(), 2)
	assert.Equal(t, "POST /carts/7/cart_items", fake.requests[0])
	assert.Equal(t, "GET /carts/7/cart_items", fake.requests[1])
}

func TestAddItem_ScenarioTotals(t *testing.T) {
	// addItem(productId=3, quantity=2) with the server reporting one line of
	// lineTotal 598 yields totalItems 2 and totalPrice 598.
	store, _ := newTestStore(t, true)

	require.NoError(t, store.AddItem(context.Background(), 3, 2))

	assert.Equal(t, 2, store.TotalItems())
	assert.Equal(t, int64(598), store.TotalPrice())
}

func TestUpdateQuantity_BelowOneIsNoop(t *testing.T) {
	store, fake := newTestStore(t, true)
	require.NoError(t, store.AddItem(context.Background(), 3, 2))
	before := store.Items()
	calls := fake.requestCount()

	require.NoError(t, store.UpdateQuantity(context.Background(), before[0].ID, 0))
	require.NoError(t, store.UpdateQuantity(context.Background(), before[0].ID, -1))

	assert.Equal(t, calls, fake.requestCount(), "no network call issued")
	assert.Equal(t, before, store.Items(), "local state unchanged")
}

func TestUpdateQuantity_PatchesThenRefreshes(t *testing.T) {
	store, _ := newTestStore(t, true)
	require.NoError(t, store.AddItem(context.Background(), 3, 1))
	id := store.Items()[0].ID

	require.NoError(t, store.UpdateQuantity(context.Background(), id, 5))

	assert.Equal(t, 5, store.TotalItems())
	assert.Equal(t, int64(5*299), store.TotalPrice())
}

func TestRemoveItem_DeletesThenRefreshes(t *testing.T) {
	store, _ := newTestStore(t, true)
	require.NoError(t, store.AddItem(context.Background(), 3, 1))
	require.NoError(t, store.AddItem(context.Background(), 4, 1))
	id := store.Items()[0].ID

	require.NoError(t, store.RemoveItem(context.Background(), id))

	items := store.Items()
	require.Len(t, items, 1)
	assert.NotEqual(t, id, items[0].ID)
}

func TestMutationFailure_LeavesStateUnchanged(t *testing.T) {
	store, fake := newTestStore(t, true)
	require.NoError(t, store.AddItem(context.Background(), 3, 2))
	before := store.Items()

	fake.failNext = true
	err := store.UpdateQuantity(context.Background(), before[0].ID, 9)

	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusInternalServerError))
	assert.Equal(t, before, store.Items(), "failed mutation never triggers a refresh")
}

func TestRefresh_UnauthenticatedClearsToEmpty(t *testing.T) {
	store, fake := newTestStore(t, false)

	require.NoError(t, store.Refresh(context.Background()))

	assert.True(t, store.IsEmpty())
	assert.Zero(t, fake.requestCount())
}

func TestTotals_FoldCorrectness(t *testing.T) {
	// After an arbitrary mutation sequence, totals equal the folds over the
	// final synchronized snapshot.
	store, _ := newTestStore(t, true)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, 1, 2))
	require.NoError(t, store.AddItem(ctx, 2, 3))
	firstID := store.Items()[0].ID
	require.NoError(t, store.UpdateQuantity(ctx, firstID, 4))
	require.NoError(t, store.RemoveItem(ctx, store.Items()[1].ID))

	var wantItems int
	var wantPrice int64
	for _, it := range store.Items() {
		wantItems += it.Quantity
		wantPrice += it.TotalPrice
	}
	assert.Equal(t, wantItems, store.TotalItems())
	assert.Equal(t, wantPrice, store.TotalPrice())
}
