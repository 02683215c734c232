package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redditdevs/VerifyBot_Go/internal/config"
	"github.com/redditdevs/VerifyBot_Go/internal/discord"
	"github.com/redditdevs/VerifyBot_Go/internal/reddit"
	"github.com/redditdevs/VerifyBot_Go/internal/server"
	"github.com/redditdevs/VerifyBot_Go/internal/store"
	"github.com/redditdevs/VerifyBot_Go/internal/verification"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn("Environment incomplete", "detail", w)
	}

	recordStore, err := store.Open(cfg.StoreDir, slog.Default())
	if err != nil {
		slog.Error("Failed to open record store", "error", err, "dir", cfg.StoreDir)
		os.Exit(1)
	}
	defer func() {
		if err := recordStore.Close(); err != nil {
			slog.Error("Failed to close record store", "error", err)
		}
	}()

	settings := config.EnvSettings{}
	directory := discord.NewClient(settings)
	commenter := reddit.NewClient(cfg.RedditToken, cfg.RedditUserAgent)
	verificationService := verification.NewService(recordStore, directory, commenter, settings)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, recordStore, verificationService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
