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

// ordersCmd lists order history, or shows one order's lines.
var ordersCmd = &cobra.Command{
	Use:   "orders [id]",
	Short: "List orders, or show one order",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOrders,
}

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel [id]",
	Short: "Cancel a pending order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersCancel,
}

func init() {
	ordersCmd.AddCommand(ordersCancelCmd)
}

func runOrders(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	if err := requireSession(ctx, a); err != nil {
		return err
	}

	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		o, err := a.client.Order(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load order %d: %w", id, err)
		}
		printOrder(o)
		return nil
	}

	orders, err := a.client.Orders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		fmt.Println("No orders yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.ID, o.Status, types.FormatPrice(o.TotalPrice), o.CreatedAt)
	}
	return w.Flush()
}

func printOrder(o types.Order) {
	fmt.Printf("Order #%d  %s  %s\n", o.ID, o.Status, types.FormatPrice(o.TotalPrice))
	if o.CreatedAt != "" {
		fmt.Printf("placed: %s\n", o.CreatedAt)
	}
	if o.ShippingAddress != "" {
		fmt.Printf("ship to: %s\n", o.ShippingAddress)
	}
	for _, it := range o.Items {
		fmt.Printf("  %s x%d  %s\n", it.Product.Name, it.Quantity, types.FormatPrice(it.UnitPrice))
	}
}

func runOrdersCancel(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	if err := requireSession(ctx, a); err != nil {
		return err
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}
	o, err := a.client.CancelOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to cancel order %d: %w", id, err)
	}
	fmt.Printf("Order #%d is now %s\n", o.ID, o.Status)
	return nil
}
