package market

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/repository"
)

type MockMarketRepo struct {
	mock.Mock
}

func (m *MockMarketRepo) OpenListings(ctx context.Context, excludeSeller string) ([]domain.MarketListing, error) {
	args := m.Called(ctx, excludeSeller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketListing), args.Error(1)
}

func (m *MockMarketRepo) ListingsBySeller(ctx context.Context, sellerID string) ([]domain.MarketListing, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketListing), args.Error(1)
}

func (m *MockMarketRepo) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.MarketTx), args.Error(1)
}

type MockMarketTx struct {
	mock.Mock
}

func (m *MockMarketTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMarketTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMarketTx) GetBalanceForUpdate(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockMarketTx) AdjustBalance(ctx context.Context, userID string, delta int) error {
	return m.Called(ctx, userID, delta).Error(0)
}

func (m *MockMarketTx) AdjustStitchcoins(ctx context.Context, userID string, delta int) error {
	return m.Called(ctx, userID, delta).Error(0)
}

func (m *MockMarketTx) AddPantry(ctx context.Context, userID, itemType string, quantity int) error {
	return m.Called(ctx, userID, itemType, quantity).Error(0)
}

func (m *MockMarketTx) RemovePantry(ctx context.Context, userID, itemType string, quantity int) error {
	return m.Called(ctx, userID, itemType, quantity).Error(0)
}

func (m *MockMarketTx) GetPantryQuantityForUpdate(ctx context.Context, userID, itemType string) (int, error) {
	args := m.Called(ctx, userID, itemType)
	return args.Int(0), args.Error(1)
}

func (m *MockMarketTx) GetListingForUpdate(ctx context.Context, listingID string) (*domain.MarketListing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketListing), args.Error(1)
}

func (m *MockMarketTx) CreateListing(ctx context.Context, listing *domain.MarketListing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockMarketTx) MarkListingSold(ctx context.Context, listingID, buyerID string) (bool, error) {
	args := m.Called(ctx, listingID, buyerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMarketTx) MarkListingCancelled(ctx context.Context, listingID string) (bool, error) {
	args := m.Called(ctx, listingID)
	return args.Bool(0), args.Error(1)
}

// nopInvalidator satisfies Invalidator for tests that don't assert on caching
type nopInvalidator struct{}

func (nopInvalidator) Invalidate(string) {}
