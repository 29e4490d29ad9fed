package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/atlatec/pozo-report-api/config"
	"github.com/atlatec/pozo-report-api/db"
	httpserver "github.com/atlatec/pozo-report-api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry, err := db.NewRegistry(cfg)
	if err != nil {
		slog.Error("registry error", "error", err)
		os.Exit(1)
	}
	defer registry.Close()

	srv := httpserver.New(cfg, registry)
	slog.Info("report API listening", "addr", cfg.ListenAddr(), "conexiones", registry.Available())

	if err := srv.Run(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
