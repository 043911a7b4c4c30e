// Command import extracts one asset declaration, or every declaration in a
// directory, and stores the result.
// Usage: import <path|dir|s3://bucket/key>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"pothen/internal/config"
	"pothen/internal/domain"
	"pothen/internal/extractor"
	"pothen/internal/logger"
	"pothen/internal/pdftext"
	"pothen/internal/port"
	"pothen/internal/repository/postgres"
	"pothen/internal/service"
	s3storage "pothen/internal/storage/s3"
	"pothen/internal/validator"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "import:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: import <path>")
	}
	src := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := logger.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, err := checkSource(src)
	if err != nil {
		return err
	}

	var store port.DeclarationStore
	if !cfg.Ingest.DryRun {
		var db *sqlx.DB
		db, err = postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer func() { _ = db.Close() }()
		store = postgres.NewDeclarationStore(db)
	}

	storage, err := s3storage.NewObjectStore(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("initializing object storage: %w", err)
	}

	ingest := service.NewIngestService(
		store,
		storage,
		pdftext.New(cfg.Ingest.PDFPassword),
		extractor.New(extractor.WithLogger(log)),
		validator.NewDefaultEngine(time.Now),
		service.IngestConfig{
			DryRun:      cfg.Ingest.DryRun,
			AuditBucket: cfg.S3.AuditBucket,
			Timeout:     cfg.Ingest.Timeout,
		},
		log,
	)

	if !dir {
		report, err := ingest.Ingest(ctx, src)
		if err != nil {
			return err
		}
		printReport(out, report)
		return nil
	}

	batch := service.NewBatchIngester(ingest, cfg.Ingest.Concurrency, log)
	res, err := batch.IngestDir(ctx, src)
	if err != nil {
		return err
	}
	for _, r := range res.Reports {
		printReport(out, r)
		fmt.Fprintln(out)
	}
	for _, f := range res.Failures {
		log.Error("import failed", slog.String("path", f.Path), slog.Any("error", f.Err))
	}
	fmt.Fprintf(out, "%d imported, %d failed\n", len(res.Reports), len(res.Failures))
	if len(res.Failures) > 0 {
		return fmt.Errorf("%d of %d documents failed", len(res.Failures), len(res.Failures)+len(res.Reports))
	}
	return nil
}

// checkSource fails fast on a missing local path, before any connection
// is opened, and reports whether it is a directory. Object storage URIs are
// checked on download.
func checkSource(src string) (dir bool, err error) {
	if s3storage.IsURI(src) {
		return false, nil
	}
	info, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, src, err)
	}
	return info.IsDir(), nil
}
