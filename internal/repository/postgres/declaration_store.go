package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pothen/internal/domain"
	"pothen/internal/port"
)

type declarationStore struct {
	db *sqlx.DB
}

// NewDeclarationStore creates a new PostgreSQL-backed DeclarationStore.
func NewDeclarationStore(db *sqlx.DB) port.DeclarationStore {
	return &declarationStore{db: db}
}

func (s *declarationStore) SaveExtraction(ctx context.Context, rec *port.ExtractionRecord) (*port.SaveResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("declarationStore.SaveExtraction begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	person, err := findOrCreatePerson(ctx, tx, rec.Person)
	if err != nil {
		return nil, err
	}

	var (
		decl     *domain.Declaration
		inserted bool
	)
	if rec.Declaration.Placeholder {
		decl, err = insertPlaceholderDeclaration(ctx, tx, person.ID, rec)
		inserted = true
	} else {
		decl, inserted, err = upsertDeclaration(ctx, tx, person.ID, rec)
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM section_entries WHERE declaration_id = $1", decl.ID); err != nil {
		return nil, fmt.Errorf("declarationStore.SaveExtraction delete entries: %w", err)
	}
	if err := insertEntries(ctx, tx, decl.ID, rec.Entries); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("declarationStore.SaveExtraction commit: %w", err)
	}
	return &port.SaveResult{Person: person, Declaration: decl, Reprocessed: !inserted}, nil
}

// findOrCreatePerson matches on first and last name, and on father's name
// only when one was extracted. An advisory lock on the name serializes
// concurrent imports of the same declarant.
func findOrCreatePerson(ctx context.Context, tx *sqlx.Tx, p domain.ExtractedPerson) (*domain.Person, error) {
	if _, err := tx.ExecContext(ctx,
		"SELECT pg_advisory_xact_lock(hashtext($1))", p.LastName+"|"+p.FirstName); err != nil {
		return nil, fmt.Errorf("declarationStore.findOrCreatePerson lock: %w", err)
	}

	var person domain.Person
	err := tx.GetContext(ctx, &person,
		`SELECT * FROM persons
		 WHERE first_name = $1 AND last_name = $2 AND ($3 = '' OR father_name = $3)
		 ORDER BY created_at LIMIT 1`,
		p.FirstName, p.LastName, p.FatherName)
	if err == nil {
		return &person, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("declarationStore.findOrCreatePerson find: %w", err)
	}

	now := time.Now().UTC()
	person = domain.Person{
		ID:         uuid.New(),
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		FatherName: p.FatherName,
		Role:       domain.RoleDeclarant,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO persons (id, first_name, last_name, father_name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		person.ID, person.FirstName, person.LastName, person.FatherName, person.Role,
		person.CreatedAt, person.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("declarationStore.findOrCreatePerson insert: %w", err)
	}
	return &person, nil
}

type upsertedDeclaration struct {
	domain.Declaration
	Inserted bool `db:"inserted"`
}

// upsertDeclaration creates the declaration or reuses the row with the same
// number, overwriting its header and summary columns.
func upsertDeclaration(ctx context.Context, tx *sqlx.Tx, personID uuid.UUID, rec *port.ExtractionRecord) (*domain.Declaration, bool, error) {
	now := time.Now().UTC()
	var row upsertedDeclaration
	err := tx.GetContext(ctx, &row,
		`INSERT INTO declarations (
			id, person_id, declaration_number, year, source_file,
			total_income, total_deposits, total_investments, real_estate_count,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (declaration_number) DO UPDATE SET
			person_id = EXCLUDED.person_id,
			year = EXCLUDED.year,
			source_file = EXCLUDED.source_file,
			total_income = EXCLUDED.total_income,
			total_deposits = EXCLUDED.total_deposits,
			total_investments = EXCLUDED.total_investments,
			real_estate_count = EXCLUDED.real_estate_count,
			updated_at = EXCLUDED.updated_at
		RETURNING *, (xmax = 0) AS inserted`,
		uuid.New(), personID, rec.Declaration.DeclarationNumber, rec.Declaration.Year, rec.SourceFile,
		rec.Summary.TotalIncome, rec.Summary.TotalDeposits, rec.Summary.TotalInvestments,
		rec.Summary.RealEstateCount, now)
	if err != nil {
		return nil, false, fmt.Errorf("declarationStore.upsertDeclaration: %w", err)
	}
	return &row.Declaration, row.Inserted, nil
}

// maxPlaceholderAttempts bounds the suffixes tried for one synthesized number.
const maxPlaceholderAttempts = 64

// placeholderCandidate returns the number tried on the given attempt:
// the synthesized number first, then the same number with "-2", "-3", ...
func placeholderCandidate(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt+1)
}

// insertPlaceholderDeclaration always creates a new row. Synthesized numbers
// are timestamps and may coincide for unrelated documents, so a taken number
// is never treated as a re-import; the next free suffix is used instead.
func insertPlaceholderDeclaration(ctx context.Context, tx *sqlx.Tx, personID uuid.UUID, rec *port.ExtractionRecord) (*domain.Declaration, error) {
	now := time.Now().UTC()
	for attempt := 0; attempt < maxPlaceholderAttempts; attempt++ {
		number := placeholderCandidate(rec.Declaration.DeclarationNumber, attempt)
		var decl domain.Declaration
		err := tx.GetContext(ctx, &decl,
			`INSERT INTO declarations (
				id, person_id, declaration_number, year, source_file,
				total_income, total_deposits, total_investments, real_estate_count,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
			ON CONFLICT (declaration_number) DO NOTHING
			RETURNING *`,
			uuid.New(), personID, number, rec.Declaration.Year, rec.SourceFile,
			rec.Summary.TotalIncome, rec.Summary.TotalDeposits, rec.Summary.TotalInvestments,
			rec.Summary.RealEstateCount, now)
		if err == nil {
			return &decl, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("declarationStore.insertPlaceholderDeclaration: %w", err)
		}
	}
	return nil, fmt.Errorf("declarationStore.insertPlaceholderDeclaration: no free number for %s after %d attempts",
		rec.Declaration.DeclarationNumber, maxPlaceholderAttempts)
}

func insertEntries(ctx context.Context, tx *sqlx.Tx, declarationID uuid.UUID, entries []domain.FinancialEntry) error {
	if len(entries) == 0 {
		return nil
	}
	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO section_entries (
			id, declaration_id, seq, section_type, holder_role,
			amount, currency, data, notes, line_start, line_end, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`)
	if err != nil {
		return fmt.Errorf("declarationStore.insertEntries prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range entries {
		e := &entries[i]
		if !e.SectionType.Valid() {
			return fmt.Errorf("declarationStore.insertEntries seq %d: unknown section type %q", i, e.SectionType)
		}
		data, err := json.Marshal(e.AuxiliaryData)
		if err != nil {
			return fmt.Errorf("declarationStore.insertEntries marshal data: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			uuid.New(), declarationID, i, e.SectionType, e.HolderRole,
			e.Amount, e.CurrencyLabel, data, e.Notes,
			e.Provenance.Start, e.Provenance.End, now); err != nil {
			return fmt.Errorf("declarationStore.insertEntries seq %d: %w", i, err)
		}
	}
	return nil
}

func (s *declarationStore) ListDeclarationIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := s.db.SelectContext(ctx, &ids,
		"SELECT id FROM declarations ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("declarationStore.ListDeclarationIDs: %w", err)
	}
	return ids, nil
}

func (s *declarationStore) ListEntries(ctx context.Context, declarationID uuid.UUID) ([]domain.SectionEntry, error) {
	var entries []domain.SectionEntry
	if err := s.db.SelectContext(ctx, &entries,
		"SELECT * FROM section_entries WHERE declaration_id = $1 ORDER BY seq",
		declarationID); err != nil {
		return nil, fmt.Errorf("declarationStore.ListEntries: %w", err)
	}
	return entries, nil
}

// UpdateSummary overwrites the monetary totals. The real-estate count has
// no backing entries and is left as stored.
func (s *declarationStore) UpdateSummary(ctx context.Context, declarationID uuid.UUID, summary domain.DeclarationSummary) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE declarations SET
			total_income = $1, total_deposits = $2, total_investments = $3, updated_at = $4
		 WHERE id = $5`,
		summary.TotalIncome, summary.TotalDeposits, summary.TotalInvestments,
		time.Now().UTC(), declarationID)
	if err != nil {
		return fmt.Errorf("declarationStore.UpdateSummary: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("declarationStore.UpdateSummary rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrDeclarationNotFound
	}
	return nil
}
