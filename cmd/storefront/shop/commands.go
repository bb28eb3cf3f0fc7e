package shop

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/session"
	"storefront/internal/types"
)

// Messages delivered by async gateway calls. Each command runs in its own
// goroutine and suspends only at the network boundary; the Update loop stays
// single-threaded.

type sessionRestoredMsg struct {
	restored bool
}

type catalogLoadedMsg struct {
	products   []types.Product
	categories []types.Category
	wishlist   catalog.WishlistSnapshot
	err        error
}

type productLoadedMsg struct {
	product types.Product
	err     error
}

type cartRefreshedMsg struct {
	notice string
	err    error
}

type ordersLoadedMsg struct {
	orders []types.Order
	err    error
}

type orderCancelledMsg struct {
	err error
}

type wishlistLoadedMsg struct {
	snapshot catalog.WishlistSnapshot
	err      error
}

type wishlistToggledMsg struct {
	productID int
	message   string
	err       error
}

type authResultMsg struct {
	result session.Result
	signup bool
}

type profileSavedMsg struct {
	user types.User
	err  error
}

type orderPlacedMsg struct {
	order types.Order
	err   error
}

// restoreSession resumes a persisted session and synchronizes the cart
// before the first screen renders.
func (m Model) restoreSession() tea.Cmd {
	sess, cartStore := m.session, m.cart
	return func() tea.Msg {
		ctx := context.Background()
		restored := sess.Restore(ctx)
		if restored {
			_ = cartStore.Refresh(ctx)
		}
		return sessionRestoredMsg{restored: restored}
	}
}

// loadCatalog fetches products, categories, and the wishlist snapshot
// concurrently; the screen renders once all three settle.
func (m Model) loadCatalog() tea.Cmd {
	client, userID := m.client, m.session.UserID()
	return func() tea.Msg {
		ctx := context.Background()
		var msg catalogLoadedMsg

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			msg.products, err = client.Products(gctx, "")
			return err
		})
		g.Go(func() error {
			var err error
			msg.categories, err = client.Categories(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.wishlist, err = catalog.LoadWishlist(gctx, client, userID)
			return err
		})

		msg.err = g.Wait()
		return msg
	}
}

// loadProduct fetches one product with its variants.
func (m Model) loadProduct(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		product, err := client.Product(context.Background(), id)
		return productLoadedMsg{product: product, err: err}
	}
}

// addToCart adds a line and reports the synchronized outcome.
func (m Model) addToCart(productID, quantity int) tea.Cmd {
	cartStore := m.cart
	return func() tea.Msg {
		if err := cartStore.AddItem(context.Background(), productID, quantity); err != nil {
			return cartRefreshedMsg{err: err}
		}
		return cartRefreshedMsg{notice: "Added to cart"}
	}
}

// updateCartQuantity patches a line quantity then refreshes.
func (m Model) updateCartQuantity(itemID, quantity int) tea.Cmd {
	cartStore := m.cart
	return func() tea.Msg {
		if err := cartStore.UpdateQuantity(context.Background(), itemID, quantity); err != nil {
			return cartRefreshedMsg{err: err}
		}
		return cartRefreshedMsg{}
	}
}

// removeCartItem deletes a line then refreshes.
func (m Model) removeCartItem(itemID int) tea.Cmd {
	cartStore := m.cart
	return func() tea.Msg {
		if err := cartStore.RemoveItem(context.Background(), itemID); err != nil {
			return cartRefreshedMsg{err: err}
		}
		return cartRefreshedMsg{notice: "Removed from cart"}
	}
}

// refreshCart re-synchronizes the cart snapshot.
func (m Model) refreshCart() tea.Cmd {
	cartStore := m.cart
	return func() tea.Msg {
		if err := cartStore.Refresh(context.Background()); err != nil {
			return cartRefreshedMsg{err: err}
		}
		return cartRefreshedMsg{}
	}
}

// loadOrders fetches the order history.
func (m Model) loadOrders() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		orders, err := client.Orders(context.Background())
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

// cancelOrder cancels a pending order; the list reloads afterwards.
func (m Model) cancelOrder(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.CancelOrder(context.Background(), id)
		return orderCancelledMsg{err: err}
	}
}

// loadWishlist fetches the wishlist snapshot for the wishlist page.
func (m Model) loadWishlist() tea.Cmd {
	client, userID := m.client, m.session.UserID()
	return func() tea.Msg {
		snapshot, err := catalog.LoadWishlist(context.Background(), client, userID)
		return wishlistLoadedMsg{snapshot: snapshot, err: err}
	}
}

// toggleWishlist flips membership for a product.
func (m Model) toggleWishlist(productID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		res, err := client.ToggleWishlist(context.Background(), productID)
		return wishlistToggledMsg{productID: productID, message: res.Message, err: err}
	}
}

// login submits credentials; auth failures come back as structured results.
func (m Model) login(creds types.Credentials) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return authResultMsg{result: sess.Login(context.Background(), creds)}
	}
}

// signup creates an account and starts a session.
func (m Model) signup(req types.SignupRequest) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return authResultMsg{result: sess.Signup(context.Background(), req), signup: true}
	}
}

// saveProfile patches the user's mutable fields.
func (m Model) saveProfile(userID int, update types.ProfileUpdate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.UpdateProfile(context.Background(), userID, update)
		return profileSavedMsg{user: user, err: err}
	}
}

// placeOrder drives the checkout flow's submit.
func (m Model) placeOrder(form checkout.Form) tea.Cmd {
	flow, cartStore := m.checkout, m.cart
	return func() tea.Msg {
		order, err := flow.Submit(context.Background(), form)
		if err != nil {
			return orderPlacedMsg{err: err}
		}
		// The cart is consumed by the order; re-synchronize the snapshot.
		_ = cartStore.Refresh(context.Background())
		return orderPlacedMsg{order: order}
	}
}
