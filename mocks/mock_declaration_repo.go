package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pothen/internal/domain"
)

// MockDeclarationRepo is a mock implementation of port.DeclarationRepository.
type MockDeclarationRepo struct {
	mock.Mock
}

func (m *MockDeclarationRepo) List(ctx context.Context, offset, limit int) ([]domain.DeclarationWithPerson, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DeclarationWithPerson), args.Int(1), args.Error(2)
}

func (m *MockDeclarationRepo) ListAll(ctx context.Context) ([]domain.DeclarationWithPerson, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeclarationWithPerson), args.Error(1)
}

func (m *MockDeclarationRepo) GetDetail(ctx context.Context, id uuid.UUID) (*domain.DeclarationDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeclarationDetail), args.Error(1)
}
