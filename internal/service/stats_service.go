package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"pothen/internal/domain"
	"pothen/internal/port"
)

const statsCacheKey = "stats"

// StatsService provides aggregate statistics.
type StatsService interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
	Invalidate()
}

type statsService struct {
	statsRepo port.StatsRepository
	cache     *cache.Cache
	ttl       time.Duration
}

// NewStatsService creates a new StatsService. Results are cached for ttl;
// a non-positive ttl disables caching.
func NewStatsService(statsRepo port.StatsRepository, ttl time.Duration) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		cache:     cache.New(ttl, 2*ttl),
		ttl:       ttl,
	}
}

func (s *statsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	if s.ttl > 0 {
		if cached, found := s.cache.Get(statsCacheKey); found {
			return cached.(*domain.Stats), nil
		}
	}

	stats, err := s.statsRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		s.cache.Set(statsCacheKey, stats, cache.DefaultExpiration)
	}
	return stats, nil
}

// Invalidate drops the cached statistics.
func (s *statsService) Invalidate() {
	s.cache.Delete(statsCacheKey)
}
