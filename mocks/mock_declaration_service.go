package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pothen/internal/domain"
)

// MockDeclarationService is a mock implementation of service.DeclarationService.
type MockDeclarationService struct {
	mock.Mock
}

func (m *MockDeclarationService) List(ctx context.Context, offset, limit int) ([]domain.DeclarationWithPerson, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DeclarationWithPerson), args.Int(1), args.Error(2)
}

func (m *MockDeclarationService) ListAll(ctx context.Context) ([]domain.DeclarationWithPerson, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeclarationWithPerson), args.Error(1)
}

func (m *MockDeclarationService) Get(ctx context.Context, id uuid.UUID) (*domain.DeclarationDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeclarationDetail), args.Error(1)
}
