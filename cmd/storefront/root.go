package main

import (
	"fmt"

	"storefront-client/internal/client"
	"storefront-client/internal/config"
	"storefront-client/internal/logging"
	"storefront-client/internal/repository"
	"storefront-client/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app bundles the wired-up client stack; every command builds one.
type app struct {
	log      zerolog.Logger
	sessions repository.SessionStore
	auth     service.AuthService
	catalog  service.CatalogService
	cart     service.CartService
	addrs    service.AddressService
	checkout service.CheckoutService
	subs     service.SubscriptionService
	users    service.UserService
}

func newApp() (*app, error) {
	_ = godotenv.Load()

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	log := logging.New(cfg.Log)

	db, err := client.InitSessionDB(cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}

	sessions := repository.NewSessionStore(db)
	gateway := client.NewGateway(&cfg.Backend, sessions, log)
	provider := client.NewStripeClient(&cfg.Stripe)

	return &app{
		log:      log,
		sessions: sessions,
		auth:     service.NewAuthService(gateway, sessions),
		catalog:  service.NewCatalogService(gateway),
		cart:     service.NewCartService(gateway),
		addrs:    service.NewAddressService(gateway),
		checkout: service.NewCheckoutService(gateway, provider, service.LeaveSettled, log),
		subs:     service.NewSubscriptionService(gateway),
		users:    service.NewUserService(gateway),
	}, nil
}

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Command-line storefront client",
	Long:          "Browse products, manage the cart and addresses, check out and manage subscriptions against the commerce backend.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(addressesCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(subscriptionsCmd)
}
