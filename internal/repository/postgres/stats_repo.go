package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pothen/internal/domain"
	"pothen/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const totalsQuery = `SELECT
	COUNT(*) AS total_declarations,
	COUNT(DISTINCT person_id) AS total_persons,
	COALESCE(SUM(total_income), 0) AS total_income,
	COALESCE(SUM(total_deposits), 0) AS total_deposits,
	COALESCE(SUM(total_investments), 0) AS total_investments,
	COALESCE(SUM(real_estate_count), 0) AS total_real_estate
FROM declarations`

const byYearQuery = `SELECT
	year,
	COUNT(*) AS declarations,
	COALESCE(SUM(total_income), 0) AS total_income,
	COALESCE(SUM(total_deposits), 0) AS total_deposits,
	COALESCE(SUM(total_investments), 0) AS total_investments
FROM declarations
GROUP BY year
ORDER BY year DESC`

func (r *statsRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, totalsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats totals: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.ByYear, byYearQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats by year: %w", err)
	}
	if stats.ByYear == nil {
		stats.ByYear = []domain.YearStats{}
	}
	return &stats, nil
}
