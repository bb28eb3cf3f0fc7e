package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/types"
)

var (
	authEmail    string
	authPassword string
	signupFirst  string
	signupLast   string
)

// loginCmd starts a session and persists the token.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session token",
	RunE:  runLogin,
}

// logoutCmd ends the local session.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the persisted token",
	RunE:  runLogout,
}

// signupCmd creates an account and signs in.
var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE:  runSignup,
}

// whoamiCmd prints the current session's user.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "Account password (prompted when omitted)")

	signupCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	signupCmd.Flags().StringVar(&authPassword, "password", "", "Account password (prompted when omitted)")
	signupCmd.Flags().StringVar(&signupFirst, "first-name", "", "First name")
	signupCmd.Flags().StringVar(&signupLast, "last-name", "", "Last name")
}

// promptFor reads one line from stdin when the flag was not given.
func promptFor(label, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	email, err := promptFor("Email", authEmail)
	if err != nil {
		return err
	}
	password, err := promptFor("Password", authPassword)
	if err != nil {
		return err
	}

	result := a.session.Login(context.Background(), types.Credentials{Email: email, Password: password})
	if !result.Success {
		logger.Warn("login failed", zap.String("email", email))
		return fmt.Errorf("login failed: %s", result.Error)
	}

	u := a.session.User()
	fmt.Printf("Signed in as %s (%s %s)\n", u.Email, u.FirstName, u.LastName)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.session.Logout()
	fmt.Println("Signed out")
	return nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	email, err := promptFor("Email", authEmail)
	if err != nil {
		return err
	}
	password, err := promptFor("Password", authPassword)
	if err != nil {
		return err
	}
	first, err := promptFor("First name", signupFirst)
	if err != nil {
		return err
	}
	last, err := promptFor("Last name", signupLast)
	if err != nil {
		return err
	}

	result := a.session.Signup(context.Background(), types.SignupRequest{
		Email:     email,
		Password:  password,
		FirstName: first,
		LastName:  last,
	})
	if !result.Success {
		return fmt.Errorf("signup failed: %s", result.Error)
	}

	fmt.Printf("Account created, signed in as %s\n", a.session.User().Email)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if !a.session.Restore(context.Background()) {
		fmt.Println("Not signed in")
		return nil
	}
	u := a.session.User()
	fmt.Printf("%s (%s %s)\n", u.Email, u.FirstName, u.LastName)
	if u.Admin {
		fmt.Println("role: admin")
	}
	return nil
}
