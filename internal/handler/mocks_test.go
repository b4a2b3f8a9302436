package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/plushka/stitchfarm/internal/account"
	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/farm"
	"github.com/plushka/stitchfarm/internal/market"
	"github.com/plushka/stitchfarm/internal/stitch"
)

type MockFarmService struct {
	mock.Mock
}

func (m *MockFarmService) Plant(ctx context.Context, userID, plotID, cropKind string) error {
	return m.Called(ctx, userID, plotID, cropKind).Error(0)
}

func (m *MockFarmService) HarvestPlot(ctx context.Context, userID, plotID string) (*farm.HarvestResult, error) {
	args := m.Called(ctx, userID, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.HarvestResult), args.Error(1)
}

func (m *MockFarmService) ClearPlot(ctx context.Context, userID, plotID string) error {
	return m.Called(ctx, userID, plotID).Error(0)
}

func (m *MockFarmService) PlantTree(ctx context.Context, userID, treeID, treeKind string) error {
	return m.Called(ctx, userID, treeID, treeKind).Error(0)
}

func (m *MockFarmService) HarvestTree(ctx context.Context, userID, treeID string) (*farm.HarvestResult, error) {
	args := m.Called(ctx, userID, treeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.HarvestResult), args.Error(1)
}

func (m *MockFarmService) ClearTree(ctx context.Context, userID, treeID string) error {
	return m.Called(ctx, userID, treeID).Error(0)
}

func (m *MockFarmService) FeedAnimal(ctx context.Context, userID, penID string, quantity int) (*farm.FeedResult, error) {
	args := m.Called(ctx, userID, penID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.FeedResult), args.Error(1)
}

func (m *MockFarmService) CollectProduct(ctx context.Context, userID, penID string) (*farm.CollectResult, error) {
	args := m.Called(ctx, userID, penID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.CollectResult), args.Error(1)
}

func (m *MockFarmService) PlaceAnimal(ctx context.Context, userID, penID, animalKind string) (*domain.Pen, error) {
	args := m.Called(ctx, userID, penID, animalKind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pen), args.Error(1)
}

func (m *MockFarmService) BuyPlot(ctx context.Context, userID string) (*domain.Plot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plot), args.Error(1)
}

func (m *MockFarmService) BuyPen(ctx context.Context, userID string) (*domain.Pen, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pen), args.Error(1)
}

func (m *MockFarmService) BuyTreeSlot(ctx context.Context, userID string) (*domain.Tree, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tree), args.Error(1)
}

func (m *MockFarmService) Plots(ctx context.Context, userID string) ([]farm.PlotView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]farm.PlotView), args.Error(1)
}

func (m *MockFarmService) Trees(ctx context.Context, userID string) ([]farm.TreeView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]farm.TreeView), args.Error(1)
}

func (m *MockFarmService) Pens(ctx context.Context, userID string) ([]farm.PenView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]farm.PenView), args.Error(1)
}

type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) SellToSystem(ctx context.Context, userID, itemType string, quantity int) (*market.SellResult, error) {
	args := m.Called(ctx, userID, itemType, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.SellResult), args.Error(1)
}

func (m *MockMarketService) ListForSale(ctx context.Context, userID, itemType string, quantity, unitPrice int) (*domain.MarketListing, error) {
	args := m.Called(ctx, userID, itemType, quantity, unitPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketListing), args.Error(1)
}

func (m *MockMarketService) BuyListing(ctx context.Context, buyerID, listingID string) (*domain.MarketListing, error) {
	args := m.Called(ctx, buyerID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketListing), args.Error(1)
}

func (m *MockMarketService) CancelListing(ctx context.Context, sellerID, listingID string) error {
	return m.Called(ctx, sellerID, listingID).Error(0)
}

func (m *MockMarketService) OpenListings(ctx context.Context, userID string) ([]domain.MarketListing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketListing), args.Error(1)
}

func (m *MockMarketService) MyListings(ctx context.Context, userID string) ([]domain.MarketListing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketListing), args.Error(1)
}

type MockStitchService struct {
	mock.Mock
}

func (m *MockStitchService) RequestCodeWord(ctx context.Context, userID string) (*domain.StitchTask, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StitchTask), args.Error(1)
}

func (m *MockStitchService) SubmitTask(ctx context.Context, userID, taskID, beforeRef, afterRef string, stitchCount int) (*domain.StitchTask, error) {
	args := m.Called(ctx, userID, taskID, beforeRef, afterRef, stitchCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StitchTask), args.Error(1)
}

func (m *MockStitchService) CastReview(ctx context.Context, reviewerID, taskID string, approve bool) (*stitch.ReviewResult, error) {
	args := m.Called(ctx, reviewerID, taskID, approve)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stitch.ReviewResult), args.Error(1)
}

func (m *MockStitchService) PendingTasks(ctx context.Context, reviewerID string) ([]domain.StitchTask, error) {
	args := m.Called(ctx, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StitchTask), args.Error(1)
}

func (m *MockStitchService) MyTasks(ctx context.Context, userID string) ([]domain.StitchTask, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StitchTask), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) EnsureProfile(ctx context.Context, userID, displayName string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockAccountService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockAccountService) Pantry(ctx context.Context, userID string) ([]domain.PantryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PantryItem), args.Error(1)
}

func (m *MockAccountService) Invalidate(userID string) {
	m.Called(userID)
}

func (m *MockAccountService) CacheStats() account.CacheStats {
	args := m.Called()
	return args.Get(0).(account.CacheStats)
}
