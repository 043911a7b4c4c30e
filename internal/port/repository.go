package port

import (
	"context"

	"github.com/google/uuid"

	"pothen/internal/domain"
)

// ExtractionRecord is everything one extraction run hands to persistence.
type ExtractionRecord struct {
	SourceFile  string
	Person      domain.ExtractedPerson
	Declaration domain.ExtractedDeclaration
	Entries     []domain.FinancialEntry
	Summary     domain.DeclarationSummary
}

// SaveResult describes what SaveExtraction wrote. Reprocessed is true when
// the declaration number was already stored and its entries were replaced.
type SaveResult struct {
	Person      *domain.Person
	Declaration *domain.Declaration
	Reprocessed bool
}

// DeclarationStore is the write side used by ingestion and backfill.
type DeclarationStore interface {
	// SaveExtraction stores a run atomically: the declarant is found or
	// created, the declaration is created or reused by number, its prior
	// entries are deleted and the new ones inserted in document order.
	SaveExtraction(ctx context.Context, rec *ExtractionRecord) (*SaveResult, error)
	ListDeclarationIDs(ctx context.Context) ([]uuid.UUID, error)
	ListEntries(ctx context.Context, declarationID uuid.UUID) ([]domain.SectionEntry, error)
	// UpdateSummary overwrites the monetary totals of a declaration.
	UpdateSummary(ctx context.Context, declarationID uuid.UUID, summary domain.DeclarationSummary) error
}

// DeclarationRepository is the read side behind the API and export.
type DeclarationRepository interface {
	List(ctx context.Context, offset, limit int) ([]domain.DeclarationWithPerson, int, error)
	ListAll(ctx context.Context) ([]domain.DeclarationWithPerson, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.DeclarationDetail, error)
}
