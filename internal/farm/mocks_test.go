package farm

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/repository"
)

type MockFarmRepo struct {
	mock.Mock
}

func (m *MockFarmRepo) GetPlots(ctx context.Context, userID string) ([]domain.Plot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plot), args.Error(1)
}

func (m *MockFarmRepo) GetTrees(ctx context.Context, userID string) ([]domain.Tree, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tree), args.Error(1)
}

func (m *MockFarmRepo) GetPens(ctx context.Context, userID string) ([]domain.Pen, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pen), args.Error(1)
}

func (m *MockFarmRepo) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.FarmTx), args.Error(1)
}

type MockFarmTx struct {
	mock.Mock
}

func (m *MockFarmTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockFarmTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockFarmTx) GetBalanceForUpdate(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockFarmTx) AdjustBalance(ctx context.Context, userID string, delta int) error {
	return m.Called(ctx, userID, delta).Error(0)
}

func (m *MockFarmTx) AdjustStitchcoins(ctx context.Context, userID string, delta int) error {
	return m.Called(ctx, userID, delta).Error(0)
}

func (m *MockFarmTx) AddPantry(ctx context.Context, userID, itemType string, quantity int) error {
	return m.Called(ctx, userID, itemType, quantity).Error(0)
}

func (m *MockFarmTx) RemovePantry(ctx context.Context, userID, itemType string, quantity int) error {
	return m.Called(ctx, userID, itemType, quantity).Error(0)
}

func (m *MockFarmTx) GetPantryQuantityForUpdate(ctx context.Context, userID, itemType string) (int, error) {
	args := m.Called(ctx, userID, itemType)
	return args.Int(0), args.Error(1)
}

func (m *MockFarmTx) GetPlotForUpdate(ctx context.Context, userID, plotID string) (*domain.Plot, error) {
	args := m.Called(ctx, userID, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plot), args.Error(1)
}

func (m *MockFarmTx) SetPlotPlanted(ctx context.Context, plotID, plantType string, plantedAt time.Time) error {
	return m.Called(ctx, plotID, plantType, plantedAt).Error(0)
}

func (m *MockFarmTx) SetPlotHarvested(ctx context.Context, plotID string, harvestedAt time.Time) error {
	return m.Called(ctx, plotID, harvestedAt).Error(0)
}

func (m *MockFarmTx) ClearPlot(ctx context.Context, plotID string) error {
	return m.Called(ctx, plotID).Error(0)
}

func (m *MockFarmTx) InsertPlot(ctx context.Context, userID string) (*domain.Plot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plot), args.Error(1)
}

func (m *MockFarmTx) GetTreeForUpdate(ctx context.Context, userID, treeID string) (*domain.Tree, error) {
	args := m.Called(ctx, userID, treeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tree), args.Error(1)
}

func (m *MockFarmTx) SetTreePlanted(ctx context.Context, treeID, treeType string, plantedAt time.Time) error {
	return m.Called(ctx, treeID, treeType, plantedAt).Error(0)
}

func (m *MockFarmTx) SetTreeHarvested(ctx context.Context, treeID string, harvestedAt time.Time) error {
	return m.Called(ctx, treeID, harvestedAt).Error(0)
}

func (m *MockFarmTx) ClearTree(ctx context.Context, treeID string) error {
	return m.Called(ctx, treeID).Error(0)
}

func (m *MockFarmTx) InsertTreeSlot(ctx context.Context, userID string) (*domain.Tree, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tree), args.Error(1)
}

func (m *MockFarmTx) GetPenForUpdate(ctx context.Context, userID, penID string) (*domain.Pen, error) {
	args := m.Called(ctx, userID, penID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pen), args.Error(1)
}

func (m *MockFarmTx) SetPenAnimals(ctx context.Context, penID, animalType string, count int) error {
	return m.Called(ctx, penID, animalType, count).Error(0)
}

func (m *MockFarmTx) SetPenCollected(ctx context.Context, penID string, collectedAt time.Time) error {
	return m.Called(ctx, penID, collectedAt).Error(0)
}

func (m *MockFarmTx) InsertPen(ctx context.Context, userID string) (*domain.Pen, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pen), args.Error(1)
}

// nopInvalidator satisfies Invalidator for tests that don't assert on caching
type nopInvalidator struct{}

func (nopInvalidator) Invalidate(string) {}
