package account

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/plushka/stitchfarm/internal/domain"
)

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockAccountRepo) EnsureProfile(ctx context.Context, userID, displayName string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockAccountRepo) GetPantry(ctx context.Context, userID string) ([]domain.PantryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PantryItem), args.Error(1)
}
