package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pothen/internal/domain"
	"pothen/internal/port"
)

type declarationRepo struct {
	db *sqlx.DB
}

// NewDeclarationRepo creates a new PostgreSQL-backed DeclarationRepository.
func NewDeclarationRepo(db *sqlx.DB) port.DeclarationRepository {
	return &declarationRepo{db: db}
}

const declarationWithPersonColumns = `d.*,
	p.id AS "person.id",
	p.first_name AS "person.first_name",
	p.last_name AS "person.last_name",
	p.father_name AS "person.father_name",
	p.role AS "person.role",
	p.created_at AS "person.created_at",
	p.updated_at AS "person.updated_at"`

// sectionOrder sorts entries in declaration order rather than alphabetically.
const sectionOrder = `array_position(ARRAY['INCOME', 'BANK_ACCOUNT', 'SECURITY', 'REAL_ESTATE', 'OTHER']::text[], section_type::text)`

func (r *declarationRepo) List(ctx context.Context, offset, limit int) ([]domain.DeclarationWithPerson, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM declarations"); err != nil {
		return nil, 0, fmt.Errorf("declarationRepo.List count: %w", err)
	}

	var decls []domain.DeclarationWithPerson
	err := r.db.SelectContext(ctx, &decls,
		`SELECT `+declarationWithPersonColumns+`
		 FROM declarations d
		 INNER JOIN persons p ON p.id = d.person_id
		 ORDER BY d.total_income DESC, d.created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("declarationRepo.List: %w", err)
	}
	return decls, total, nil
}

func (r *declarationRepo) ListAll(ctx context.Context) ([]domain.DeclarationWithPerson, error) {
	var decls []domain.DeclarationWithPerson
	err := r.db.SelectContext(ctx, &decls,
		`SELECT `+declarationWithPersonColumns+`
		 FROM declarations d
		 INNER JOIN persons p ON p.id = d.person_id
		 ORDER BY p.last_name, p.first_name, d.year`)
	if err != nil {
		return nil, fmt.Errorf("declarationRepo.ListAll: %w", err)
	}
	return decls, nil
}

func (r *declarationRepo) GetDetail(ctx context.Context, id uuid.UUID) (*domain.DeclarationDetail, error) {
	var detail domain.DeclarationDetail
	err := r.db.GetContext(ctx, &detail.DeclarationWithPerson,
		`SELECT `+declarationWithPersonColumns+`
		 FROM declarations d
		 INNER JOIN persons p ON p.id = d.person_id
		 WHERE d.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDeclarationNotFound
		}
		return nil, fmt.Errorf("declarationRepo.GetDetail: %w", err)
	}

	err = r.db.SelectContext(ctx, &detail.Sections,
		`SELECT * FROM section_entries WHERE declaration_id = $1
		 ORDER BY `+sectionOrder+`, seq`, id)
	if err != nil {
		return nil, fmt.Errorf("declarationRepo.GetDetail sections: %w", err)
	}
	if detail.Sections == nil {
		detail.Sections = []domain.SectionEntry{}
	}
	return &detail, nil
}
