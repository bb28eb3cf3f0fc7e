package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/types"
)

var (
	profileFirst    string
	profileLast     string
	profilePhone    string
	profileShipping string
	profileBilling  string
)

// profileCmd shows the signed-in user's profile.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in user's profile",
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE:  runProfileUpdate,
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFirst, "first-name", "", "First name")
	profileUpdateCmd.Flags().StringVar(&profileLast, "last-name", "", "Last name")
	profileUpdateCmd.Flags().StringVar(&profilePhone, "phone", "", "Phone number")
	profileUpdateCmd.Flags().StringVar(&profileShipping, "shipping-address", "", "Shipping address")
	profileUpdateCmd.Flags().StringVar(&profileBilling, "billing-address", "", "Billing address")

	profileCmd.AddCommand(profileUpdateCmd)
}

func printProfile(u *types.User) {
	fmt.Printf("%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
	if u.Phone != "" {
		fmt.Printf("phone: %s\n", u.Phone)
	}
	if u.ShippingAddress != "" {
		fmt.Printf("ship to: %s\n", u.ShippingAddress)
	}
	if u.BillingAddress != "" {
		fmt.Printf("bill to: %s\n", u.BillingAddress)
	}
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	if err := requireSession(ctx, a); err != nil {
		return err
	}
	printProfile(a.session.User())
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	if err := requireSession(ctx, a); err != nil {
		return err
	}

	var update types.ProfileUpdate
	if cmd.Flags().Changed("first-name") {
		update.FirstName = &profileFirst
	}
	if cmd.Flags().Changed("last-name") {
		update.LastName = &profileLast
	}
	if cmd.Flags().Changed("phone") {
		update.Phone = &profilePhone
	}
	if cmd.Flags().Changed("shipping-address") {
		update.ShippingAddress = &profileShipping
	}
	if cmd.Flags().Changed("billing-address") {
		update.BillingAddress = &profileBilling
	}

	user, err := a.client.UpdateProfile(ctx, a.session.UserID(), update)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	a.session.SetUser(user)
	fmt.Println("Profile updated")
	printProfile(&user)
	return nil
}
