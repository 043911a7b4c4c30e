package port

import (
	"context"

	"pothen/internal/domain"
)

// StatsRepository provides aggregate statistics queries.
type StatsRepository interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}
