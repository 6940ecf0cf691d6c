// Package main starts the rostermerge HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ukaji3/rostermerge-go/internal/config"
	"github.com/ukaji3/rostermerge-go/internal/logger"
	"github.com/ukaji3/rostermerge-go/internal/server"
)

func main() {
	log := logger.NewDefault()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	log = logger.New(os.Stderr, cfg.LogLevel)

	opts, err := cfg.Options()
	if err != nil {
		log.Error("Failed to load extraction options: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, opts, log)
	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
