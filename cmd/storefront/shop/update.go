package shop

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/logging"
	"storefront/internal/types"
)

// Update is the single message loop. Async results arrive as the typed
// messages defined in commands.go; keys are dispatched per page.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionRestoredMsg:
		if msg.restored {
			logging.Session("session restored for %s", m.session.User().Email)
		}
		return m, m.loadCatalog()

	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setNotice("Failed to load catalog: "+msg.err.Error(), true)
			return m, nil
		}
		m.products = msg.products
		m.categories = msg.categories
		m.wishlist = msg.wishlist
		m.catalogSel = clampIndex(m.catalogSel, len(m.visibleProducts()))
		return m, nil

	case productLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setNotice("Failed to load product: "+msg.err.Error(), true)
			return m, nil
		}
		m.product = msg.product
		m.variantSel = -1
		m.quantity = 1
		m.backPage = m.page
		m.page = PageProduct
		return m, nil

	case cartRefreshedMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, cart.ErrSignInRequired) {
				return m.gotoLogin(msg.err.Error()), nil
			}
			m.setNotice(msg.err.Error(), true)
			return m, nil
		}
		if msg.notice != "" {
			m.setNotice(msg.notice, false)
		}
		m.cartSel = clampIndex(m.cartSel, len(m.cart.Items()))
		return m, nil

	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setNotice("Failed to load orders: "+msg.err.Error(), true)
			return m, nil
		}
		m.orders = msg.orders
		m.orderSel = clampIndex(m.orderSel, len(m.orders))
		return m, nil

	case orderCancelledMsg:
		if msg.err != nil {
			m.loading = false
			m.setNotice("Cancel failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.setNotice("Order cancelled", false)
		return m, m.loadOrders()

	case wishlistLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setNotice("Failed to load wishlist: "+msg.err.Error(), true)
			return m, nil
		}
		m.wishlist = msg.snapshot
		m.wishSel = clampIndex(m.wishSel, m.wishlist.Len())
		return m, nil

	case wishlistToggledMsg:
		if msg.err != nil {
			m.loading = false
			m.setNotice(msg.err.Error(), true)
			return m, nil
		}
		if msg.message != "" {
			m.setNotice(msg.message, false)
		}
		return m, m.loadWishlist()

	case authResultMsg:
		m.loading = false
		if !msg.result.Success {
			m.setNotice(msg.result.Error, true)
			return m, nil
		}
		if msg.signup {
			m.setNotice("Welcome, "+m.session.User().FirstName, false)
		} else {
			m.setNotice("Signed in as "+m.session.User().Email, false)
		}
		m.loginForm.reset()
		m.signupForm.reset()
		m.page = m.backPage
		m.loading = true
		return m, tea.Batch(m.refreshCart(), m.loadCatalog())

	case profileSavedMsg:
		m.loading = false
		if msg.err != nil {
			m.setNotice("Update failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.session.SetUser(msg.user)
		m.setNotice("Profile updated", false)
		m.page = m.backPage
		return m, nil

	case orderPlacedMsg:
		m.loading = false
		if msg.err != nil {
			m.setNotice(msg.err.Error(), true)
			return m, nil
		}
		m.checkoutForm.reset()
		m.setNotice("Order #"+strconv.Itoa(msg.order.ID)+" placed", false)
		m.page = PageOrders
		m.loading = true
		return m, m.loadOrders()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.page {
	case PageLogin:
		return m.updateLogin(msg)
	case PageSignup:
		return m.updateSignup(msg)
	case PageCheckout:
		return m.updateCheckout(msg)
	case PageProfile:
		return m.updateProfile(msg)
	}

	// Non-form pages share navigation keys.
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.page = m.backPage
		m.backPage = PageCatalog
		m.clearNotice()
		return m, nil
	case "h":
		return m.goTo(PageCatalog), nil
	case "c":
		m = m.goTo(PageCart)
		m.loading = true
		return m, m.refreshCart()
	case "o":
		if !m.session.IsAuthenticated() {
			return m.gotoLogin("Sign in to view orders"), nil
		}
		m = m.goTo(PageOrders)
		m.loading = true
		return m, m.loadOrders()
	case "w":
		if !m.session.IsAuthenticated() {
			return m.gotoLogin("Sign in to view your wishlist"), nil
		}
		m = m.goTo(PageWishlist)
		m.loading = true
		return m, m.loadWishlist()
	case "u":
		if !m.session.IsAuthenticated() {
			return m.gotoLogin("Sign in to edit your profile"), nil
		}
		m = m.goTo(PageProfile)
		m.prefillProfileForm()
		return m, nil
	case "L":
		if m.session.IsAuthenticated() {
			m.session.Logout()
			m.cart.Clear()
			m.wishlist = catalog.WishlistSnapshot{}
			m.setNotice("Signed out", false)
			return m, nil
		}
		return m.gotoLogin(""), nil
	case "A":
		if u := m.session.User(); u != nil && u.Admin {
			return m.goTo(PageAdmin), nil
		}
		m.setNotice("Admin access required", true)
		return m, nil
	}

	switch m.page {
	case PageCatalog:
		return m.updateCatalog(msg)
	case PageProduct:
		return m.updateProduct(msg)
	case PageCart:
		return m.updateCart(msg)
	case PageOrders:
		return m.updateOrders(msg)
	case PageWishlist:
		return m.updateWishlist(msg)
	}
	return m, nil
}

// ============================================================================
// PER-PAGE KEY HANDLERS
// ============================================================================

func (m Model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleProducts()
	switch msg.String() {
	case "up", "k":
		if m.catalogSel > 0 {
			m.catalogSel--
		}
	case "down", "j":
		if m.catalogSel < len(visible)-1 {
			m.catalogSel++
		}
	case "left":
		if m.categoryIdx > 0 {
			m.categoryIdx--
			m.catalogSel = 0
		}
	case "right", "tab":
		if m.categoryIdx < len(m.categories) {
			m.categoryIdx++
		} else {
			m.categoryIdx = 0
		}
		m.catalogSel = 0
	case "enter":
		if m.catalogSel < len(visible) {
			m.loading = true
			return m, m.loadProduct(visible[m.catalogSel].ID)
		}
	case "f":
		if !m.session.IsAuthenticated() {
			return m.gotoLogin("Sign in to save favorites"), nil
		}
		if m.catalogSel < len(visible) {
			return m, m.toggleWishlist(visible[m.catalogSel].ID)
		}
	case "r":
		m.loading = true
		return m, m.loadCatalog()
	}
	return m, nil
}

func (m Model) updateProduct(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	flat := m.flatVariants()
	switch msg.String() {
	case "up", "k":
		if m.variantSel >= 0 {
			m.variantSel--
			m.clampToStock()
		}
	case "down", "j":
		if m.variantSel < len(flat)-1 {
			m.variantSel++
			m.clampToStock()
		}
	case "+", "=", "right":
		avail := catalog.AvailableStock(m.product, m.selectedVariant())
		m.quantity = catalog.ClampQuantity(m.quantity+1, avail)
	case "-", "left":
		avail := catalog.AvailableStock(m.product, m.selectedVariant())
		m.quantity = catalog.ClampQuantity(m.quantity-1, avail)
	case "enter", "a":
		if catalog.AvailableStock(m.product, m.selectedVariant()) < 1 {
			m.setNotice("Out of stock", true)
			return m, nil
		}
		if !m.session.IsAuthenticated() {
			return m.gotoLogin("Sign in to add items to your cart"), nil
		}
		m.loading = true
		return m, m.addToCart(m.product.ID, m.quantity)
	case "f":
		if !m.session.IsAuthenticated() {
			return m.gotoLogin("Sign in to save favorites"), nil
		}
		return m, m.toggleWishlist(m.product.ID)
	}
	return m, nil
}

func (m Model) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.cart.Items()
	switch msg.String() {
	case "up", "k":
		if m.cartSel > 0 {
			m.cartSel--
		}
	case "down", "j":
		if m.cartSel < len(items)-1 {
			m.cartSel++
		}
	case "+", "=":
		if m.cartSel < len(items) {
			it := items[m.cartSel]
			return m, m.updateCartQuantity(it.ID, it.Quantity+1)
		}
	case "-":
		if m.cartSel < len(items) {
			it := items[m.cartSel]
			if it.Quantity <= 1 {
				return m, m.removeCartItem(it.ID)
			}
			return m, m.updateCartQuantity(it.ID, it.Quantity-1)
		}
	case "x", "d":
		if m.cartSel < len(items) {
			return m, m.removeCartItem(items[m.cartSel].ID)
		}
	case "r":
		m.loading = true
		return m, m.refreshCart()
	case "enter":
		if !m.session.IsAuthenticated() {
			return m.gotoLogin("Sign in to check out"), nil
		}
		if err := m.checkout.Enter(); err != nil {
			m.setNotice(err.Error(), true)
			return m, nil
		}
		m = m.goTo(PageCheckout)
		m.prefillCheckoutForm()
		return m, nil
	}
	return m, nil
}

func (m Model) updateOrders(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.orderSel > 0 {
			m.orderSel--
		}
	case "down", "j":
		if m.orderSel < len(m.orders)-1 {
			m.orderSel++
		}
	case "x":
		if m.orderSel < len(m.orders) {
			o := m.orders[m.orderSel]
			if o.Status != types.OrderPending {
				m.setNotice("Only pending orders can be cancelled", true)
				return m, nil
			}
			m.loading = true
			return m, m.cancelOrder(o.ID)
		}
	case "r":
		m.loading = true
		return m, m.loadOrders()
	}
	return m, nil
}

func (m Model) updateWishlist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.wishlist.Entries()
	switch msg.String() {
	case "up", "k":
		if m.wishSel > 0 {
			m.wishSel--
		}
	case "down", "j":
		if m.wishSel < len(entries)-1 {
			m.wishSel++
		}
	case "enter":
		if m.wishSel < len(entries) {
			m.loading = true
			return m, m.loadProduct(entries[m.wishSel].ProductID)
		}
	case "x", "f":
		if m.wishSel < len(entries) {
			return m, m.toggleWishlist(entries[m.wishSel].ProductID)
		}
	}
	return m, nil
}

// ============================================================================
// FORM PAGES
// ============================================================================

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.page = m.backPage
		m.clearNotice()
		return m, nil
	case "tab", "down":
		m.loginForm.next()
		return m, nil
	case "shift+tab", "up":
		m.loginForm.prev()
		return m, nil
	case "ctrl+n":
		m.page = PageSignup
		m.clearNotice()
		return m, nil
	case "enter":
		if m.loginForm.focus < len(m.loginForm.inputs)-1 {
			m.loginForm.next()
			return m, nil
		}
		creds := types.Credentials{
			Email:    strings.TrimSpace(m.loginForm.value(0)),
			Password: m.loginForm.value(1),
		}
		if creds.Email == "" || creds.Password == "" {
			m.setNotice("Email and password are required", true)
			return m, nil
		}
		m.loading = true
		return m, m.login(creds)
	}
	return m, m.loginForm.update(msg)
}

func (m Model) updateSignup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.page = PageLogin
		m.clearNotice()
		return m, nil
	case "tab", "down":
		m.signupForm.next()
		return m, nil
	case "shift+tab", "up":
		m.signupForm.prev()
		return m, nil
	case "enter":
		if m.signupForm.focus < len(m.signupForm.inputs)-1 {
			m.signupForm.next()
			return m, nil
		}
		req := types.SignupRequest{
			Email:     strings.TrimSpace(m.signupForm.value(0)),
			Password:  m.signupForm.value(1),
			FirstName: strings.TrimSpace(m.signupForm.value(2)),
			LastName:  strings.TrimSpace(m.signupForm.value(3)),
		}
		if req.Email == "" || req.Password == "" {
			m.setNotice("Email and password are required", true)
			return m, nil
		}
		m.loading = true
		return m, m.signup(req)
	}
	return m, m.signupForm.update(msg)
}

func (m Model) updateCheckout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.page = PageCart
		m.clearNotice()
		return m, nil
	case "tab", "down":
		m.checkoutForm.next()
		return m, nil
	case "shift+tab", "up":
		m.checkoutForm.prev()
		return m, nil
	case "ctrl+t":
		if m.payment == types.PaymentCashOnDelivery {
			m.payment = types.PaymentCard
		} else {
			m.payment = types.PaymentCashOnDelivery
		}
		return m, nil
	case "enter":
		if m.checkoutForm.focus < len(m.checkoutForm.inputs)-1 {
			m.checkoutForm.next()
			return m, nil
		}
		form := checkout.Form{
			ShippingAddress: m.checkoutForm.value(0),
			BillingAddress:  m.checkoutForm.value(1),
			Phone:           m.checkoutForm.value(2),
			PaymentMethod:   m.payment,
		}
		m.loading = true
		return m, m.placeOrder(form)
	}
	return m, m.checkoutForm.update(msg)
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.page = m.backPage
		m.clearNotice()
		return m, nil
	case "tab", "down":
		m.profileForm.next()
		return m, nil
	case "shift+tab", "up":
		m.profileForm.prev()
		return m, nil
	case "enter":
		if m.profileForm.focus < len(m.profileForm.inputs)-1 {
			m.profileForm.next()
			return m, nil
		}
		update := types.ProfileUpdate{
			FirstName:       strptr(m.profileForm.value(0)),
			LastName:        strptr(m.profileForm.value(1)),
			Phone:           strptr(m.profileForm.value(2)),
			ShippingAddress: strptr(m.profileForm.value(3)),
			BillingAddress:  strptr(m.profileForm.value(4)),
		}
		m.loading = true
		return m, m.saveProfile(m.session.UserID(), update)
	}
	return m, m.profileForm.update(msg)
}

// ============================================================================
// HELPERS
// ============================================================================

// goTo switches pages, remembering where Esc should return.
func (m Model) goTo(page Page) Model {
	if page != m.page {
		m.backPage = m.page
		m.page = page
	}
	m.clearNotice()
	return m
}

// gotoLogin redirects to the sign-in form, optionally with a prompt.
func (m Model) gotoLogin(prompt string) Model {
	m = m.goTo(PageLogin)
	if prompt != "" {
		m.setNotice(prompt, false)
	}
	return m
}

// prefillProfileForm copies the current user into the profile form.
func (m *Model) prefillProfileForm() {
	u := m.session.User()
	if u == nil {
		return
	}
	m.profileForm.setValue(0, u.FirstName)
	m.profileForm.setValue(1, u.LastName)
	m.profileForm.setValue(2, u.Phone)
	m.profileForm.setValue(3, u.ShippingAddress)
	m.profileForm.setValue(4, u.BillingAddress)
}

// prefillCheckoutForm seeds empty checkout fields from the saved profile.
func (m *Model) prefillCheckoutForm() {
	u := m.session.User()
	if u == nil {
		return
	}
	if m.checkoutForm.value(0) == "" {
		m.checkoutForm.setValue(0, u.ShippingAddress)
	}
	if m.checkoutForm.value(1) == "" {
		m.checkoutForm.setValue(1, u.BillingAddress)
	}
	if m.checkoutForm.value(2) == "" {
		m.checkoutForm.setValue(2, u.Phone)
	}
}

// clampToStock re-clamps the quantity after a variant change.
func (m *Model) clampToStock() {
	avail := catalog.AvailableStock(m.product, m.selectedVariant())
	m.quantity = catalog.ClampQuantity(m.quantity, avail)
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func strptr(s string) *string {
	return &s
}
