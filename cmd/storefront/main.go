package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storefront/cmd/storefront/shop"
	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/localstate"
	"storefront/internal/logging"
	"storefront/internal/session"
)

var (
	// Global flags
	verbose    bool
	cfgPath    string
	apiBaseURL string
	themeFlag  string

	// Logger for non-interactive subcommands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "storefront - terminal client for the commerce API",
	Long: `storefront is a terminal client for a remote commerce service.

It covers the full shopping loop: browse the catalog, inspect products and
variants, manage a cart and wishlist, check out, and review past orders.
Sessions persist across restarts in a local state database.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip the zap logger for interactive mode (it has its own UI)
		if cmd.Use == "storefront" && cmd.CalledAs() == "storefront" {
			return nil
		}

		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// app bundles the client stores every command works against.
type app struct {
	cfg      *config.Config
	state    *localstate.Store
	client   *api.Client
	session  *session.Store
	cart     *cart.Store
	checkout *checkout.Flow
}

// newApp loads config, opens the state database, and wires the stores.
func newApp() (*app, error) {
	path := cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if apiBaseURL != "" {
		cfg.API.BaseURL = apiBaseURL
	}
	if themeFlag != "" {
		cfg.UI.Theme = themeFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logging.Initialize(config.DefaultDir(), logging.Settings{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.State.DatabasePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	state, err := localstate.Open(cfg.State.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, state)
	sess := session.New(client)
	cartStore := cart.New(client, sess)
	flow := checkout.New(client, cartStore)

	logging.Boot("client ready, api=%s state=%s", cfg.API.BaseURL, state.Path())

	return &app{
		cfg:      cfg,
		state:    state,
		client:   client,
		session:  sess,
		cart:     cartStore,
		checkout: flow,
	}, nil
}

func (a *app) close() {
	if err := a.state.Close(); err != nil {
		logging.Boot("state close: %v", err)
	}
	logging.CloseAll()
}

// runInteractive launches the full-screen shopping interface.
func runInteractive() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	model := shop.New(shop.Config{
		Client:   a.client,
		Session:  a.session,
		Cart:     a.cart,
		Checkout: a.checkout,
		Theme:    a.cfg.UI.Theme,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: ~/.storefront/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-url", "", "Commerce API base URL (or set STOREFRONT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "UI theme: light, dark, auto")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(wishlistCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(profileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
