// Package shop provides the interactive terminal storefront. The interface is
// split across files the same way the screens are split:
//   - model.go: types, construction, Init
//   - update.go: the message loop and per-page key handling
//   - view.go: rendering functions
//   - commands.go: async gateway calls wrapped as tea.Cmds
//   - forms.go: text-input form helpers (login, signup, checkout, profile)
//   - admin.go: the mocked admin dashboard data
package shop

import (
	"storefront/cmd/storefront/ui"
	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/session"
	"storefront/internal/types"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// Page identifies the active screen.
type Page int

const (
	PageCatalog Page = iota
	PageProduct
	PageCart
	PageCheckout
	PageOrders
	PageWishlist
	PageProfile
	PageAdmin
	PageLogin
	PageSignup
)

// Config holds construction parameters for the interactive storefront.
type Config struct {
	Client   *api.Client
	Session  *session.Store
	Cart     *cart.Store
	Checkout *checkout.Flow
	Theme    string
}

// Model is the root bubbletea model.
type Model struct {
	// Injected stores
	client   *api.Client
	session  *session.Store
	cart     *cart.Store
	checkout *checkout.Flow

	// UI components
	styles   ui.Styles
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	width  int
	height int

	page     Page
	backPage Page // where Esc returns to
	loading  bool

	// Transient status line, the TUI's stand-in for the SPA's toasts
	notice    string
	noticeErr bool

	// Catalog state
	products    []types.Product
	categories  []types.Category
	categoryIdx int // 0 = all, otherwise categories[categoryIdx-1]
	catalogSel  int
	wishlist    catalog.WishlistSnapshot

	// Product details state
	product    types.Product
	variantSel int // index into flattened variant list, -1 when none
	quantity   int

	// Cart state
	cartSel int

	// Orders state
	orders   []types.Order
	orderSel int

	// Wishlist page state
	wishSel int

	// Forms
	loginForm    form
	signupForm   form
	checkoutForm form
	profileForm  form
	payment      string
}

// New constructs the storefront model. The stores are built once at the
// application root and shared by reference with every page.
func New(cfg Config) Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	return Model{
		client:   cfg.Client,
		session:  cfg.Session,
		cart:     cfg.Cart,
		checkout: cfg.Checkout,
		styles:   styles,
		spinner:  sp,
		renderer: renderer,
		page:     PageCatalog,
		loading:  true,
		quantity: 1,
		payment:  types.PaymentCashOnDelivery,

		loginForm:    newLoginForm(),
		signupForm:   newSignupForm(),
		checkoutForm: newCheckoutForm(),
		profileForm:  newProfileForm(),
	}
}

// Init restores the session and loads the catalog.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.restoreSession())
}

// flatVariants returns the product's variants in group display order.
func (m Model) flatVariants() []types.ProductVariant {
	var out []types.ProductVariant
	for _, g := range catalog.GroupVariants(m.product.Variants) {
		out = append(out, g.Variants...)
	}
	return out
}

// selectedVariant resolves the current selection, nil when none.
func (m Model) selectedVariant() *types.ProductVariant {
	flat := m.flatVariants()
	if m.variantSel < 0 || m.variantSel >= len(flat) {
		return nil
	}
	v := flat[m.variantSel]
	return &v
}

// visibleProducts applies the active category filter to the last-fetched
// product snapshot.
func (m Model) visibleProducts() []types.Product {
	if m.categoryIdx == 0 || m.categoryIdx > len(m.categories) {
		return m.products
	}
	return catalog.FilterByCategory(m.products, m.categories[m.categoryIdx-1].ID)
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) clearNotice() {
	m.notice = ""
	m.noticeErr = false
}
