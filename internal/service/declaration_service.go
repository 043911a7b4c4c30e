package service

import (
	"context"

	"github.com/google/uuid"

	"pothen/internal/domain"
	"pothen/internal/port"
)

// DeclarationService exposes stored declarations for reading.
type DeclarationService interface {
	List(ctx context.Context, offset, limit int) ([]domain.DeclarationWithPerson, int, error)
	ListAll(ctx context.Context) ([]domain.DeclarationWithPerson, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.DeclarationDetail, error)
}

type declarationService struct {
	declRepo port.DeclarationRepository
}

// NewDeclarationService creates a new DeclarationService implementation.
func NewDeclarationService(declRepo port.DeclarationRepository) DeclarationService {
	return &declarationService{declRepo: declRepo}
}

func (s *declarationService) List(ctx context.Context, offset, limit int) ([]domain.DeclarationWithPerson, int, error) {
	return s.declRepo.List(ctx, offset, limit)
}

func (s *declarationService) ListAll(ctx context.Context) ([]domain.DeclarationWithPerson, error) {
	return s.declRepo.ListAll(ctx)
}

func (s *declarationService) Get(ctx context.Context, id uuid.UUID) (*domain.DeclarationDetail, error) {
	return s.declRepo.GetDetail(ctx, id)
}
