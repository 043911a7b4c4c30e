package service

import (
	"context"
	"fmt"
	"log/slog"

	"pothen/internal/domain"
	"pothen/internal/extractor"
	"pothen/internal/port"
)

// SummaryService rebuilds stored declaration totals from stored entries.
type SummaryService interface {
	RecomputeAll(ctx context.Context) (int, error)
}

type summaryService struct {
	store  port.DeclarationStore
	logger *slog.Logger
}

// NewSummaryService creates a new SummaryService implementation.
func NewSummaryService(store port.DeclarationStore, logger *slog.Logger) SummaryService {
	return &summaryService{store: store, logger: logger.With("component", "summary")}
}

// RecomputeAll refolds every declaration's entries and overwrites its
// totals. It returns the number of declarations updated.
func (s *summaryService) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.store.ListDeclarationIDs(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		stored, err := s.store.ListEntries(ctx, id)
		if err != nil {
			return updated, err
		}
		summary := extractor.Summarize(toFinancialEntries(stored), 0)
		if err := s.store.UpdateSummary(ctx, id, summary); err != nil {
			return updated, fmt.Errorf("declaration %s: %w", id, err)
		}
		updated++
		s.logger.Debug("summary recomputed", "declaration_id", id, "entries", len(stored))
	}
	return updated, nil
}

func toFinancialEntries(stored []domain.SectionEntry) []domain.FinancialEntry {
	entries := make([]domain.FinancialEntry, len(stored))
	for i := range stored {
		entries[i] = domain.FinancialEntry{
			SectionType: stored[i].SectionType,
			HolderRole:  stored[i].HolderRole,
			Amount:      stored[i].Amount,
			Notes:       stored[i].Notes,
			Provenance:  domain.Provenance{Start: stored[i].LineStart, End: stored[i].LineEnd},
		}
	}
	return entries
}
