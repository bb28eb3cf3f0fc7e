package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storefront/internal/types"
)

var cartQuantity int

// cartCmd groups the cart operations.
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
	RunE:  runCartList,
}

var cartAddCmd = &cobra.Command{
	Use:   "add [product-id]",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update [item-id]",
	Short: "Change a cart line's quantity",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartUpdate,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove [item-id]",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

func init() {
	cartAddCmd.Flags().IntVarP(&cartQuantity, "quantity", "n", 1, "Quantity to add")
	cartUpdateCmd.Flags().IntVarP(&cartQuantity, "quantity", "n", 1, "New quantity")

	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)
}

// requireSession restores the persisted session or fails.
func requireSession(ctx context.Context, a *app) error {
	if !a.session.Restore(ctx) {
		return fmt.Errorf("not signed in, run: storefront login")
	}
	return nil
}

func printCart(a *app) error {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tPRODUCT\tQTY\tTOTAL")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", it.ID, it.Product.Name, it.Quantity, types.FormatPrice(it.TotalPrice))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d items, total %s\n", a.cart.TotalItems(), types.FormatPrice(a.cart.TotalPrice()))
	return nil
}

func runCartList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	if err := requireSession(ctx, a); err != nil {
		return err
	}
	if err := a.cart.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	return printCart(a)
}

func runCartAdd(cmd *cobra.Command, args []string) error {
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
	if err := a.cart.AddItem(ctx, productID, cartQuantity); err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	return printCart(a)
}

func runCartUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	if err := requireSession(ctx, a); err != nil {
		return err
	}
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	if err := a.cart.UpdateQuantity(ctx, itemID, cartQuantity); err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	return printCart(a)
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	if err := requireSession(ctx, a); err != nil {
		return err
	}
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	if err := a.cart.RemoveItem(ctx, itemID); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return printCart(a)
}
