package service

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

// BatchFailure is a document that could not be ingested.
type BatchFailure struct {
	Path string
	Err  error
}

// BatchResult holds the outcome of a batch, in input order.
type BatchResult struct {
	Reports  []*IngestReport
	Failures []BatchFailure
}

// BatchIngester ingests many documents with bounded parallelism. Each
// document runs through its own pipeline; one failure does not stop the rest.
type BatchIngester struct {
	ingest      IngestService
	concurrency int
	logger      *slog.Logger
}

// NewBatchIngester creates a new BatchIngester.
func NewBatchIngester(ingest IngestService, concurrency int, logger *slog.Logger) *BatchIngester {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchIngester{
		ingest:      ingest,
		concurrency: concurrency,
		logger:      logger.With("component", "batch"),
	}
}

// IngestDir ingests every .pdf and .txt file under dir.
func (b *BatchIngester) IngestDir(ctx context.Context, dir string) (*BatchResult, error) {
	paths, err := CollectSources(dir)
	if err != nil {
		return nil, err
	}
	return b.IngestAll(ctx, paths), nil
}

// IngestAll ingests paths concurrently. Paths not yet started when ctx is
// canceled are reported as failures with the context error.
func (b *BatchIngester) IngestAll(ctx context.Context, paths []string) *BatchResult {
	reports := make([]*IngestReport, len(paths))
	errs := make([]error, len(paths))

	sem := make(chan struct{}, b.concurrency)
	var wg sync.WaitGroup

	b.logger.Info("batch started", "documents", len(paths), "concurrency", b.concurrency)

	for i, p := range paths {
		if ctx.Err() == nil {
			select {
			case <-ctx.Done():
			case sem <- struct{}{}: // acquire
			}
		}
		if err := ctx.Err(); err != nil {
			for j := i; j < len(paths); j++ {
				errs[j] = err
			}
			break
		}

		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			defer func() { <-sem }() // release

			reports[i], errs[i] = b.ingest.Ingest(ctx, p)
			if errs[i] != nil {
				b.logger.Error("document failed", "path", p, "error", errs[i])
			}
		}(i, p)
	}
	wg.Wait()

	res := &BatchResult{}
	for i, p := range paths {
		if errs[i] != nil {
			res.Failures = append(res.Failures, BatchFailure{Path: p, Err: errs[i]})
			continue
		}
		res.Reports = append(res.Reports, reports[i])
	}

	b.logger.Info("batch finished", "ingested", len(res.Reports), "failed", len(res.Failures))
	return res
}

// CollectSources lists the .pdf and .txt files under dir in lexical order.
func CollectSources(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".pdf", ".txt":
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return paths, nil
}
