// Command export writes every stored declaration to a CSV or XLSX file,
// chosen by the output file's extension.
// Usage: export <out.csv|out.xlsx>
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"pothen/internal/config"
	"pothen/internal/export"
	"pothen/internal/logger"
	"pothen/internal/repository/postgres"
	"pothen/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: export <out.csv|out.xlsx>")
	}
	outPath := args[0]

	format, err := export.FormatFromPath(outPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := logger.Init(cfg.Log)

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	decls, err := service.NewDeclarationService(postgres.NewDeclarationRepo(db)).ListAll(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := export.Write(f, format, export.RowsFrom(decls)); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outPath, err)
	}

	log.Info("export written", "path", outPath, "format", format, "declarations", len(decls))
	return nil
}
