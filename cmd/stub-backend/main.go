package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-client/internal/config"
	"storefront-client/internal/handler"
	"storefront-client/internal/logging"
	"storefront-client/internal/server"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log)

	store := handler.NewStore()
	srv := server.NewServer(store, cfg.Stub.JWTSecret)

	serverAddr := cfg.Stub.Host + ":" + cfg.Stub.Port

	log.Info().Str("addr", serverAddr).Msg("starting stub backend")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("stub backend error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, shutting down")

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("stub backend shutdown error")
	}
}
