package shop

import (
	"fmt"
	"strconv"
	"strings"

	"storefront/cmd/storefront/ui"
	"storefront/internal/types"
)

// The admin dashboard is demo-only: the backend has no admin endpoints yet,
// so the page renders fixed placeholder data behind the admin flag.

type adminStats struct {
	TotalUsers    int
	TotalProducts int
	TotalOrders   int
	TotalRevenue  int64
}

type adminOrder struct {
	ID       int
	Customer string
	Total    int64
	Status   string
	Date     string
}

type adminProduct struct {
	ID     int
	Name   string
	Price  int64
	Stock  int
	Status string
}

func demoAdminStats() adminStats {
	return adminStats{
		TotalUsers:    1250,
		TotalProducts: 89,
		TotalOrders:   456,
		TotalRevenue:  12543050,
	}
}

func demoRecentOrders() []adminOrder {
	return []adminOrder{
		{ID: 1, Customer: "John Doe", Total: 29999, Status: "completed", Date: "2025-09-03"},
		{ID: 2, Customer: "Jane Smith", Total: 19999, Status: "pending", Date: "2025-09-03"},
		{ID: 3, Customer: "Bob Johnson", Total: 59999, Status: "shipped", Date: "2025-09-02"},
	}
}

func demoProducts() []adminProduct {
	return []adminProduct{
		{ID: 1, Name: "MacBook Pro", Price: 199999, Stock: 10, Status: "active"},
		{ID: 2, Name: "iPhone 15", Price: 99999, Stock: 25, Status: "active"},
		{ID: 3, Name: "AirPods Pro", Price: 24999, Stock: 0, Status: "out_of_stock"},
	}
}

func (m Model) viewAdmin() string {
	var b strings.Builder
	stats := demoAdminStats()

	b.WriteString(m.styles.Title.Render("Admin Dashboard") + "\n")
	b.WriteString(m.styles.Warning.Render("Development mode: demo data, admin endpoints are not implemented") + "\n\n")

	b.WriteString(fmt.Sprintf("Users %d  •  Products %d  •  Orders %d  •  Revenue %s\n\n",
		stats.TotalUsers, stats.TotalProducts, stats.TotalOrders, types.FormatPrice(stats.TotalRevenue)))

	orders := ui.NewSimpleTable("Recent Orders", []string{"Order", "Customer", "Total", "Status", "Date"})
	for _, o := range demoRecentOrders() {
		orders.AddRow("#"+strconv.Itoa(o.ID), o.Customer, types.FormatPrice(o.Total), m.renderStatus(o.Status), o.Date)
	}
	b.WriteString(orders.View(m.styles))
	b.WriteString("\n")

	products := ui.NewSimpleTable("Products", []string{"Name", "Price", "Stock", "Status"})
	for _, p := range demoProducts() {
		status := p.Status
		if status == "out_of_stock" {
			status = m.styles.OutOfStock.Render(status)
		}
		products.AddRow(p.Name, types.FormatPrice(p.Price), strconv.Itoa(p.Stock), status)
	}
	b.WriteString(products.View(m.styles))
	return b.String()
}
