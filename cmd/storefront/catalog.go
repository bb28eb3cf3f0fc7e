package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storefront/internal/catalog"
	"storefront/internal/types"
)

var productsCategory string

// productsCmd lists the catalog, or shows one product with its variants.
var productsCmd = &cobra.Command{
	Use:   "products [id]",
	Short: "List products, or show one product with variants",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProducts,
}

// categoriesCmd lists product categories.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	RunE:  runCategories,
}

func init() {
	productsCmd.Flags().StringVar(&productsCategory, "category", "", "Filter by category id")
}

func runProducts(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return showProduct(ctx, a, id)
	}

	products, err := a.client.Products(ctx, productsCategory)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY")
	for _, p := range products {
		stock := strconv.Itoa(p.StockQuantity)
		if !p.InStock {
			stock = "out of stock"
		}
		cat := ""
		if p.Category != nil {
			cat = p.Category.Name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, types.FormatPrice(p.Price), stock, cat)
	}
	return w.Flush()
}

func showProduct(ctx context.Context, a *app, id int) error {
	p, err := a.client.Product(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load product %d: %w", id, err)
	}

	fmt.Printf("%s  %s\n", p.Name, types.FormatPrice(p.Price))
	if p.Category != nil {
		fmt.Printf("category: %s\n", p.Category.Name)
	}
	if p.SKU != "" {
		fmt.Printf("sku: %s\n", p.SKU)
	}
	fmt.Printf("stock: %d\n", p.StockQuantity)
	if p.Description != "" {
		fmt.Printf("\n%s\n", p.Description)
	}

	groups := catalog.GroupVariants(p.Variants)
	if len(groups) == 0 {
		return nil
	}
	fmt.Println()
	for _, g := range groups {
		fmt.Printf("%s:\n", g.Name)
		for _, v := range g.Variants {
			price := catalog.CurrentPrice(p.Price, &v)
			fmt.Printf("  %s  %s (stock %d)\n", v.Value, types.FormatPrice(price), v.StockQuantity)
		}
	}
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	categories, err := a.client.Categories(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range categories {
		fmt.Printf("%d\t%s\n", c.ID, c.Name)
	}
	return nil
}
