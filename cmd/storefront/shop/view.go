package shop

import (
	"fmt"
	"strconv"
	"strings"

	"storefront/cmd/storefront/ui"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/types"
)

// View renders the active page with a shared header and footer.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading...\n")
	} else {
		switch m.page {
		case PageCatalog:
			b.WriteString(m.viewCatalog())
		case PageProduct:
			b.WriteString(m.viewProduct())
		case PageCart:
			b.WriteString(m.viewCart())
		case PageCheckout:
			b.WriteString(m.viewCheckout())
		case PageOrders:
			b.WriteString(m.viewOrders())
		case PageWishlist:
			b.WriteString(m.viewWishlist())
		case PageProfile:
			b.WriteString(m.viewProfile())
		case PageAdmin:
			b.WriteString(m.viewAdmin())
		case PageLogin:
			b.WriteString(m.viewLogin())
		case PageSignup:
			b.WriteString(m.viewSignup())
		}
	}

	if m.notice != "" {
		b.WriteString("\n")
		if m.noticeErr {
			b.WriteString(m.styles.Error.Render("✗ " + m.notice))
		} else {
			b.WriteString(m.styles.Success.Render("✓ " + m.notice))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.footerHelp()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewHeader() string {
	title := "Storefront"
	who := "guest"
	if u := m.session.User(); u != nil {
		who = u.Email
		if u.Admin {
			who += " (admin)"
		}
	}
	count := m.cart.TotalItems()
	right := fmt.Sprintf("cart: %d  •  %s", count, who)
	return m.styles.Header.Render(title) + "  " + m.styles.Muted.Render(right)
}

func (m Model) footerHelp() string {
	switch m.page {
	case PageCatalog:
		return "↑/↓ select • ←/→ category • enter view • f wishlist • c cart • o orders • w wishlist page • u profile • L sign in/out • q quit"
	case PageProduct:
		return "↑/↓ variant • +/- quantity • enter add to cart • f wishlist • esc back"
	case PageCart:
		return "↑/↓ select • +/- quantity • x remove • enter checkout • esc back"
	case PageCheckout:
		return "tab next field • ctrl+t payment method • enter submit • esc back to cart"
	case PageOrders:
		return "↑/↓ select • x cancel pending • r reload • esc back"
	case PageWishlist:
		return "↑/↓ select • enter view • x remove • esc back"
	case PageProfile:
		return "tab next field • enter save • esc back"
	case PageAdmin:
		return "esc back"
	case PageLogin:
		return "tab next field • enter sign in • ctrl+n create account • esc back"
	case PageSignup:
		return "tab next field • enter create account • esc back to sign in"
	}
	return ""
}

// ============================================================================
// PAGES
// ============================================================================

func (m Model) viewCatalog() string {
	var b strings.Builder

	// Category chips, "All" first.
	chips := make([]string, 0, len(m.categories)+1)
	for i := -1; i < len(m.categories); i++ {
		label := "All"
		if i >= 0 {
			label = m.categories[i].Name
		}
		if i+1 == m.categoryIdx {
			chips = append(chips, m.styles.Selected.Render("["+label+"]"))
		} else {
			chips = append(chips, m.styles.Muted.Render(" "+label+" "))
		}
	}
	b.WriteString(strings.Join(chips, " "))
	b.WriteString("\n\n")

	visible := m.visibleProducts()
	if len(visible) == 0 {
		b.WriteString(m.styles.Muted.Render("No products found.") + "\n")
		return b.String()
	}

	table := ui.NewSimpleTable("Products", []string{"", "Name", "Price", "Stock", ""})
	for i, p := range visible {
		cursor := " "
		if i == m.catalogSel {
			cursor = ">"
		}
		stock := strconv.Itoa(p.StockQuantity)
		if !p.InStock {
			stock = m.styles.OutOfStock.Render("out of stock")
		}
		wish := ""
		if m.wishlist.Contains(p.ID) {
			wish = m.styles.Wished.Render("♥")
		}
		table.AddRow(cursor, p.Name, types.FormatPrice(p.Price), stock, wish)
	}
	b.WriteString(table.View(m.styles))
	return b.String()
}

func (m Model) viewProduct() string {
	var b strings.Builder
	p := m.product
	sel := m.selectedVariant()

	b.WriteString(m.styles.Title.Render(p.Name))
	if m.wishlist.Contains(p.ID) {
		b.WriteString(" " + m.styles.Wished.Render("♥"))
	}
	b.WriteString("\n")
	if p.Category != nil {
		b.WriteString(m.styles.Muted.Render(p.Category.Name) + "\n")
	}
	b.WriteString("\n")

	price := catalog.CurrentPrice(p.Price, sel)
	b.WriteString(m.styles.Price.Render(types.FormatPrice(price)))
	if sel != nil && sel.PriceModifier != 0 {
		b.WriteString(" " + m.styles.PriceDelta.Render("("+types.FormatPrice(p.Price)+" base)"))
	}
	b.WriteString("\n\n")

	if p.Description != "" {
		desc := p.Description
		if m.renderer != nil {
			if out, err := m.renderer.Render(desc); err == nil {
				desc = strings.TrimSpace(out)
			}
		}
		b.WriteString(desc + "\n\n")
	}

	if groups := catalog.GroupVariants(p.Variants); len(groups) > 0 {
		flatIdx := 0
		for _, g := range groups {
			b.WriteString(m.styles.Subtitle.Render(g.Name) + "\n")
			for _, v := range g.Variants {
				line := "  " + v.Value
				if v.PriceModifier != 0 {
					line += " " + m.styles.PriceDelta.Render("+"+types.FormatPrice(v.PriceModifier))
				}
				if v.StockQuantity < 1 {
					line += " " + m.styles.OutOfStock.Render("(out of stock)")
				}
				if flatIdx == m.variantSel {
					line = m.styles.Selected.Render("> " + strings.TrimSpace(line))
				}
				b.WriteString(line + "\n")
				flatIdx++
			}
		}
		b.WriteString("\n")
	}

	avail := catalog.AvailableStock(p, sel)
	b.WriteString(fmt.Sprintf("Quantity: %d  (%d available)\n", m.quantity, avail))
	return b.String()
}

func (m Model) viewCart() string {
	items := m.cart.Items()
	if len(items) == 0 {
		return m.styles.Muted.Render("Your cart is empty.") + "\n"
	}

	var b strings.Builder
	table := ui.NewSimpleTable("Cart", []string{"", "Product", "Qty", "Total"})
	for i, it := range items {
		cursor := " "
		if i == m.cartSel {
			cursor = ">"
		}
		table.AddRow(cursor, it.Product.Name, strconv.Itoa(it.Quantity), types.FormatPrice(it.TotalPrice))
	}
	b.WriteString(table.View(m.styles))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d items  •  ", m.cart.TotalItems()))
	b.WriteString(m.styles.Price.Render("Total " + types.FormatPrice(m.cart.TotalPrice())))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewCheckout() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Checkout") + "\n\n")
	b.WriteString(m.viewForm(m.checkoutForm))

	payment := "Cash on delivery"
	if m.payment == types.PaymentCard {
		payment = "Card (demo, never charged)"
	}
	b.WriteString("\n" + m.styles.Subtitle.Render("Payment") + "  " + payment + "\n\n")

	b.WriteString(m.styles.Price.Render("Order total " + types.FormatPrice(m.cart.TotalPrice())))
	b.WriteString("\n")
	if m.checkout.State() == checkout.StateSubmitting {
		b.WriteString(m.spinner.View() + " Placing order...\n")
	}
	return b.String()
}

func (m Model) viewOrders() string {
	if len(m.orders) == 0 {
		return m.styles.Muted.Render("No orders yet.") + "\n"
	}

	var b strings.Builder
	table := ui.NewSimpleTable("Orders", []string{"", "Order", "Status", "Total", "Placed"})
	for i, o := range m.orders {
		cursor := " "
		if i == m.orderSel {
			cursor = ">"
		}
		table.AddRow(cursor, "#"+strconv.Itoa(o.ID), m.renderStatus(o.Status), types.FormatPrice(o.TotalPrice), o.CreatedAt)
	}
	b.WriteString(table.View(m.styles))

	if m.orderSel < len(m.orders) {
		o := m.orders[m.orderSel]
		if len(o.Items) > 0 {
			b.WriteString("\n" + m.styles.Subtitle.Render("Items") + "\n")
			for _, it := range o.Items {
				b.WriteString(fmt.Sprintf("  %s × %d  %s\n", it.Product.Name, it.Quantity, types.FormatPrice(it.UnitPrice)))
			}
		}
	}
	return b.String()
}

func (m Model) renderStatus(status string) string {
	switch status {
	case types.OrderPending:
		return m.styles.Warning.Render(status)
	case types.OrderCancelled:
		return m.styles.Error.Render(status)
	case types.OrderCompleted, types.OrderShipped:
		return m.styles.Success.Render(status)
	}
	return status
}

func (m Model) viewWishlist() string {
	entries := m.wishlist.Entries()
	if len(entries) == 0 {
		return m.styles.Muted.Render("Your wishlist is empty.") + "\n"
	}

	table := ui.NewSimpleTable("Wishlist", []string{"", "Product", "Price"})
	for i, e := range entries {
		cursor := " "
		if i == m.wishSel {
			cursor = ">"
		}
		name := "#" + strconv.Itoa(e.ProductID)
		price := ""
		if e.Product != nil {
			name = e.Product.Name
			price = types.FormatPrice(e.Product.Price)
		}
		table.AddRow(cursor, name, price)
	}
	return table.View(m.styles)
}

func (m Model) viewProfile() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Profile") + "\n\n")
	if u := m.session.User(); u != nil {
		b.WriteString(m.styles.Muted.Render(u.Email) + "\n\n")
	}
	b.WriteString(m.viewForm(m.profileForm))
	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Sign in") + "\n\n")
	b.WriteString(m.viewForm(m.loginForm))
	return b.String()
}

func (m Model) viewSignup() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Create account") + "\n\n")
	b.WriteString(m.viewForm(m.signupForm))
	return b.String()
}

// viewForm renders labeled inputs with the focused row marked.
func (m Model) viewForm(f form) string {
	var b strings.Builder
	for i := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			b.WriteString(m.styles.Selected.Render(label) + "\n")
		} else {
			b.WriteString(m.styles.Muted.Render(label) + "\n")
		}
		b.WriteString("  " + f.inputs[i].View() + "\n")
	}
	return b.String()
}
