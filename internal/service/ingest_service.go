package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pothen/internal/domain"
	"pothen/internal/extractor"
	"pothen/internal/port"
	"pothen/internal/storage/s3"
	"pothen/internal/validator"
)

// IngestReport describes one ingested document.
type IngestReport struct {
	Path            string                      `json:"path"`
	Person          domain.ExtractedPerson      `json:"person"`
	Declaration     domain.ExtractedDeclaration `json:"declaration"`
	Summary         domain.DeclarationSummary   `json:"summary"`
	EntryCount      int                         `json:"entry_count"`
	RealEstateLines []int                       `json:"real_estate_lines"`
	DeclarationID   uuid.UUID                   `json:"declaration_id"`
	Reprocessed     bool                        `json:"reprocessed"`
	AuditKey        string                      `json:"audit_key,omitempty"`
	DryRun          bool                        `json:"dry_run"`
	Validation      *validator.Report           `json:"validation,omitempty"`
}

// IngestService runs one source document through extraction and persistence.
type IngestService interface {
	Ingest(ctx context.Context, path string) (*IngestReport, error)
}

// IngestConfig holds ingestion settings.
type IngestConfig struct {
	DryRun      bool
	AuditBucket string
	Timeout     time.Duration
}

type ingestService struct {
	store     port.DeclarationStore
	storage   port.ObjectStorage
	text      port.TextExtractor
	extractor *extractor.Extractor
	checks    *validator.Engine
	cfg       IngestConfig
	logger    *slog.Logger
}

// NewIngestService creates a new IngestService. storage may be nil when no
// object storage is configured; store may be nil in dry-run mode; checks
// may be nil to skip quality checks.
func NewIngestService(
	store port.DeclarationStore,
	storage port.ObjectStorage,
	text port.TextExtractor,
	ext *extractor.Extractor,
	checks *validator.Engine,
	cfg IngestConfig,
	logger *slog.Logger,
) IngestService {
	return &ingestService{
		store:     store,
		storage:   storage,
		text:      text,
		extractor: ext,
		checks:    checks,
		cfg:       cfg,
		logger:    logger.With("component", "ingest"),
	}
}

func (s *ingestService) Ingest(ctx context.Context, src string) (*IngestReport, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	data, err := s.load(ctx, src)
	if err != nil {
		return nil, err
	}

	text, err := s.decode(ctx, src, data)
	if err != nil {
		return nil, err
	}

	lines := extractor.Normalize(text.Text)
	res, err := s.extractor.Extract(extractor.Document{
		Lines:        lines,
		Filename:     sourceName(src),
		MetadataYear: text.MetadataYear,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}

	report := &IngestReport{
		Path:            src,
		Person:          res.Person,
		Declaration:     res.Declaration,
		Summary:         res.Summary,
		EntryCount:      len(res.Entries),
		RealEstateLines: res.RealEstateLines,
		DryRun:          s.cfg.DryRun,
	}
	if res.Declaration.Placeholder {
		s.logger.Warn("declaration number not found, using placeholder",
			"path", src, "declaration_number", res.Declaration.DeclarationNumber)
	}

	if s.checks != nil {
		report.Validation = s.checks.Validate(ctx, res)
		for _, f := range report.Validation.Findings {
			s.logger.Warn("quality check failed",
				"path", src, "rule", f.RuleKey, "severity", f.Severity, "message", f.Message)
		}
	}

	if s.cfg.DryRun {
		report.AuditKey = s.uploadAudit(ctx, report.Declaration.DeclarationNumber, src, lines)
		s.logger.Info("dry run, skipping persistence", "path", src, "entries", report.EntryCount)
		return report, nil
	}

	saved, err := s.store.SaveExtraction(ctx, &port.ExtractionRecord{
		SourceFile:  src,
		Person:      res.Person,
		Declaration: res.Declaration,
		Entries:     res.Entries,
		Summary:     res.Summary,
	})
	if err != nil {
		return nil, fmt.Errorf("saving %s: %w", src, err)
	}
	report.DeclarationID = saved.Declaration.ID
	report.Reprocessed = saved.Reprocessed
	// A placeholder number may have been suffixed to keep it unique.
	if n := saved.Declaration.DeclarationNumber; n != "" {
		report.Declaration.DeclarationNumber = n
	}
	report.AuditKey = s.uploadAudit(ctx, report.Declaration.DeclarationNumber, src, lines)

	s.logger.Info("declaration ingested",
		"path", src,
		"declaration_number", report.Declaration.DeclarationNumber,
		"entries", report.EntryCount,
		"reprocessed", saved.Reprocessed)
	return report, nil
}

// load reads a local file or an s3://bucket/key object.
func (s *ingestService) load(ctx context.Context, src string) ([]byte, error) {
	if s3.IsURI(src) {
		if s.storage == nil {
			return nil, fmt.Errorf("%w: %s: object storage is not configured", domain.ErrInvalidSource, src)
		}
		bucket, key, err := s3.ParseURI(src)
		if err != nil {
			return nil, err
		}
		return s.storage.Download(ctx, bucket, key)
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, src, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidSource, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, src, err)
	}
	return data, nil
}

// decode turns source bytes into text. Plain-text sources skip PDF decoding.
func (s *ingestService) decode(ctx context.Context, src string, data []byte) (*port.ExtractedText, error) {
	if strings.EqualFold(path.Ext(src), ".txt") {
		return &port.ExtractedText{Text: string(data), Pages: 1}, nil
	}
	text, err := s.text.Extract(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return text, nil
}

// uploadAudit stores the numbered normalized lines so every entry's
// provenance can be checked later. Failures are logged, not returned.
func (s *ingestService) uploadAudit(ctx context.Context, declarationNumber, src string, lines []string) string {
	if s.storage == nil || s.cfg.AuditBucket == "" {
		return ""
	}

	var buf bytes.Buffer
	for i, l := range lines {
		fmt.Fprintf(&buf, "%05d\t%s\n", i, l)
	}
	key := fmt.Sprintf("lines/%s/%s.txt", declarationNumber, sourceName(src))

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.AuditBucket,
		Key:         key,
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: "text/plain; charset=utf-8",
		Size:        int64(buf.Len()),
	})
	if err != nil {
		s.logger.Warn("audit upload failed", "path", src, "key", key, "error", err)
		return ""
	}
	return key
}

// sourceName returns the base name of a local path or S3 key.
func sourceName(src string) string {
	if s3.IsURI(src) {
		return path.Base(src)
	}
	return filepath.Base(src)
}
