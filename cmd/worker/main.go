package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mvillanueva/tindahan/internal"
	"github.com/mvillanueva/tindahan/internal/worker"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	if cfg.NatsURL == "" {
		return fmt.Errorf("NATS_URL must be set for the alert worker")
	}

	w, err := worker.NewAlertWorker(cfg.NatsURL, cfg.Inventory.LowStockThreshold, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize alert worker: %w", err)
	}

	logger.Info("Alert worker started", "nats_url", cfg.NatsURL)
	return w.Run(ctx)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
