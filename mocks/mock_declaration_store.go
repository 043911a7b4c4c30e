package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pothen/internal/domain"
	"pothen/internal/port"
)

// MockDeclarationStore is a mock implementation of port.DeclarationStore.
type MockDeclarationStore struct {
	mock.Mock
}

func (m *MockDeclarationStore) SaveExtraction(ctx context.Context, rec *port.ExtractionRecord) (*port.SaveResult, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.SaveResult), args.Error(1)
}

func (m *MockDeclarationStore) ListDeclarationIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockDeclarationStore) ListEntries(ctx context.Context, declarationID uuid.UUID) ([]domain.SectionEntry, error) {
	args := m.Called(ctx, declarationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SectionEntry), args.Error(1)
}

func (m *MockDeclarationStore) UpdateSummary(ctx context.Context, declarationID uuid.UUID, summary domain.DeclarationSummary) error {
	args := m.Called(ctx, declarationID, summary)
	return args.Error(0)
}
