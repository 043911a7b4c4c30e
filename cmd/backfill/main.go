// Command backfill recomputes every stored declaration's totals from its
// stored entries. Real-estate counts are left as imported.
// Usage: go run ./cmd/backfill
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pothen/internal/config"
	"pothen/internal/logger"
	"pothen/internal/repository/postgres"
	"pothen/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("backfill failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := logger.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	summaries := service.NewSummaryService(postgres.NewDeclarationStore(db), log)
	n, err := summaries.RecomputeAll(ctx)
	if err != nil {
		return fmt.Errorf("recomputing summaries after %d declarations: %w", n, err)
	}

	log.Info("backfill complete", "declarations", n)
	return nil
}
