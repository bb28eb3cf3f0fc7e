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

// wishlistCmd lists the wishlist.
var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage the wishlist",
	RunE:  runWishlistList,
}

var wishlistToggleCmd = &cobra.Command{
	Use:   "toggle [product-id]",
	Short: "Add or remove a product from the wishlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishlistToggle,
}

func init() {
	wishlistCmd.AddCommand(wishlistToggleCmd)
}

func runWishlistList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	if err := requireSession(ctx, a); err != nil {
		return err
	}
	snapshot, err := catalog.LoadWishlist(ctx, a.client, a.session.UserID())
	if err != nil {
		return fmt.Errorf("failed to load wishlist: %w", err)
	}
	entries := snapshot.Entries()
	if len(entries) == 0 {
		fmt.Println("Wishlist is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tPRICE")
	for _, e := range entries {
		name, price := "", ""
		if e.Product != nil {
			name = e.Product.Name
			price = types.FormatPrice(e.Product.Price)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.ProductID, name, price)
	}
	return w.Flush()
}

func runWishlistToggle(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	if err := requireSession(ctx, a); err != nil {
		return err
	}
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	res, err := a.client.ToggleWishlist(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to toggle wishlist: %w", err)
	}
	if res.Message != "" {
		fmt.Println(res.Message)
	} else if res.Added {
		fmt.Println("Added to wishlist")
	} else {
		fmt.Println("Removed from wishlist")
	}
	return nil
}
