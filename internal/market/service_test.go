package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/plushka/stitchfarm/internal/domain"
)

func newTestService(repo *MockMarketRepo) Service {
	return NewService(repo, nopInvalidator{}, domain.DefaultCatalog())
}

func newTxMock() *MockMarketTx {
	tx := new(MockMarketTx)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()
	return tx
}

func activeListing(id, seller string) *domain.MarketListing {
	return &domain.MarketListing{
		ID:           id,
		SellerID:     seller,
		ItemType:     "wheat",
		Quantity:     3,
		PricePerUnit: 4,
		Status:       domain.ListingStatusActive,
	}
}

func TestSellToSystem_Success(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("RemovePantry", mock.Anything, "alice", "milk", 2).Return(nil)
	tx.On("AdjustBalance", mock.Anything, "alice", 10).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	result, err := newTestService(repo).SellToSystem(context.Background(), "alice", "milk", 2)
	require.NoError(t, err)
	assert.Equal(t, &SellResult{ItemType: "milk", Quantity: 2, UnitPrice: 5, Total: 10}, result)
	tx.AssertExpectations(t)
}

func TestSellToSystem_UnknownKind(t *testing.T) {
	repo := new(MockMarketRepo)

	_, err := newTestService(repo).SellToSystem(context.Background(), "alice", "moonrock", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestSellToSystem_InsufficientStock(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("RemovePantry", mock.Anything, "alice", "wheat", 5).Return(domain.ErrInsufficientStock)

	_, err := newTestService(repo).SellToSystem(context.Background(), "alice", "wheat", 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	tx.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestListForSale_EscrowsStock(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("RemovePantry", mock.Anything, "alice", "eggs", 4).Return(nil)
	tx.On("CreateListing", mock.Anything, mock.MatchedBy(func(l *domain.MarketListing) bool {
		return l.SellerID == "alice" && l.ItemType == "eggs" && l.Quantity == 4 && l.PricePerUnit == 2
	})).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	listing, err := newTestService(repo).ListForSale(context.Background(), "alice", "eggs", 4, 2)
	require.NoError(t, err)
	assert.Equal(t, "eggs", listing.ItemType)
	tx.AssertExpectations(t)
}

func TestListForSale_RejectsBadInput(t *testing.T) {
	repo := new(MockMarketRepo)
	svc := newTestService(repo)

	_, err := svc.ListForSale(context.Background(), "alice", "eggs", 0, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.ListForSale(context.Background(), "alice", "eggs", 2, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestBuyListing_Success(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetListingForUpdate", mock.Anything, "listing-1").Return(activeListing("listing-1", "seller"), nil)
	tx.On("GetBalanceForUpdate", mock.Anything, "buyer").Return(20, nil)
	tx.On("MarkListingSold", mock.Anything, "listing-1", "buyer").Return(true, nil)
	tx.On("AdjustBalance", mock.Anything, "buyer", -12).Return(nil)
	tx.On("AdjustBalance", mock.Anything, "seller", 12).Return(nil)
	tx.On("AddPantry", mock.Anything, "buyer", "wheat", 3).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	listing, err := newTestService(repo).BuyListing(context.Background(), "buyer", "listing-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusSold, listing.Status)
	assert.Equal(t, "buyer", listing.BuyerID)
	tx.AssertExpectations(t)
}

func TestBuyListing_SelfTrade(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetListingForUpdate", mock.Anything, "listing-1").Return(activeListing("listing-1", "alice"), nil)

	_, err := newTestService(repo).BuyListing(context.Background(), "alice", "listing-1")
	assert.ErrorIs(t, err, domain.ErrSelfTrade)
	tx.AssertNotCalled(t, "MarkListingSold", mock.Anything, mock.Anything, mock.Anything)
}

func TestBuyListing_InsufficientFunds(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetListingForUpdate", mock.Anything, "listing-1").Return(activeListing("listing-1", "seller"), nil)
	tx.On("GetBalanceForUpdate", mock.Anything, "buyer").Return(11, nil)

	_, err := newTestService(repo).BuyListing(context.Background(), "buyer", "listing-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	tx.AssertNotCalled(t, "MarkListingSold", mock.Anything, mock.Anything, mock.Anything)
}

func TestBuyListing_AlreadySettled(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	sold := activeListing("listing-1", "seller")
	sold.Status = domain.ListingStatusSold
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetListingForUpdate", mock.Anything, "listing-1").Return(sold, nil)

	_, err := newTestService(repo).BuyListing(context.Background(), "buyer", "listing-1")
	assert.ErrorIs(t, err, domain.ErrListingNotActive)
}

// The read said active, the conditional update said no: a concurrent buyer
// won between lock release and our write. Must surface as not-active.
func TestBuyListing_LostConditionalUpdate(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetListingForUpdate", mock.Anything, "listing-1").Return(activeListing("listing-1", "seller"), nil)
	tx.On("GetBalanceForUpdate", mock.Anything, "buyer").Return(20, nil)
	tx.On("MarkListingSold", mock.Anything, "listing-1", "buyer").Return(false, nil)

	_, err := newTestService(repo).BuyListing(context.Background(), "buyer", "listing-1")
	assert.ErrorIs(t, err, domain.ErrListingNotActive)
	tx.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCancelListing_RestoresEscrow(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetListingForUpdate", mock.Anything, "listing-1").Return(activeListing("listing-1", "alice"), nil)
	tx.On("MarkListingCancelled", mock.Anything, "listing-1").Return(true, nil)
	tx.On("AddPantry", mock.Anything, "alice", "wheat", 3).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	err := newTestService(repo).CancelListing(context.Background(), "alice", "listing-1")
	require.NoError(t, err)
	tx.AssertExpectations(t)
}

func TestCancelListing_OnlySeller(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetListingForUpdate", mock.Anything, "listing-1").Return(activeListing("listing-1", "alice"), nil)

	err := newTestService(repo).CancelListing(context.Background(), "mallory", "listing-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	tx.AssertNotCalled(t, "MarkListingCancelled", mock.Anything, mock.Anything)
}

func TestCancelListing_AlreadySold(t *testing.T) {
	repo := new(MockMarketRepo)
	tx := newTxMock()
	sold := activeListing("listing-1", "alice")
	sold.Status = domain.ListingStatusSold
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetListingForUpdate", mock.Anything, "listing-1").Return(sold, nil)

	err := newTestService(repo).CancelListing(context.Background(), "alice", "listing-1")
	assert.ErrorIs(t, err, domain.ErrListingNotActive)
	tx.AssertNotCalled(t, "AddPantry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOpenListings_ExcludesOwn(t *testing.T) {
	repo := new(MockMarketRepo)
	repo.On("OpenListings", mock.Anything, "alice").Return([]domain.MarketListing{*activeListing("l1", "bob")}, nil)

	listings, err := newTestService(repo).OpenListings(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, listings, 1)
	repo.AssertExpectations(t)
}
