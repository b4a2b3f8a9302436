package market

import (
	"context"
	"fmt"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/logger"
	"github.com/plushka/stitchfarm/internal/metrics"
	"github.com/plushka/stitchfarm/internal/repository"
)

// Invalidator drops cached profile state after a balance mutation
type Invalidator interface {
	Invalidate(userID string)
}

// SellResult reports a completed system buyback
type SellResult struct {
	ItemType  string `json:"item_type"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	Total     int    `json:"total"`
}

// Service defines the interface for market operations
type Service interface {
	// SellToSystem sells pantry stock at the server-authoritative buyback price.
	SellToSystem(ctx context.Context, userID, itemType string, quantity int) (*SellResult, error)

	// ListForSale escrows stock out of the pantry and opens an active listing.
	ListForSale(ctx context.Context, userID, itemType string, quantity, unitPrice int) (*domain.MarketListing, error)

	// BuyListing settles an active listing: buyer pays, seller is credited,
	// goods move to the buyer's pantry. Exactly one buyer can ever win.
	BuyListing(ctx context.Context, buyerID, listingID string) (*domain.MarketListing, error)

	// CancelListing withdraws a seller's own active listing and returns the
	// escrowed stock to their pantry.
	CancelListing(ctx context.Context, sellerID, listingID string) error

	// OpenListings returns active listings by other sellers.
	OpenListings(ctx context.Context, userID string) ([]domain.MarketListing, error)

	// MyListings returns all of the caller's listings, any status.
	MyListings(ctx context.Context, userID string) ([]domain.MarketListing, error)
}

type service struct {
	repo     repository.Market
	accounts Invalidator
	catalog  *domain.Catalog
}

// NewService creates a new market service
func NewService(repo repository.Market, accounts Invalidator, catalog *domain.Catalog) Service {
	return &service{
		repo:     repo,
		accounts: accounts,
		catalog:  catalog,
	}
}

func (s *service) SellToSystem(ctx context.Context, userID, itemType string, quantity int) (*SellResult, error) {
	log := logger.FromContext(ctx)
	log.Info("SellToSystem called", "userID", userID, "item", itemType, "quantity", quantity)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidQuantity)
	}
	price, ok := s.catalog.Buyback(itemType)
	if !ok {
		return nil, fmt.Errorf("%w: no buyback price for %q", domain.ErrUnknownKind, itemType)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.RemovePantry(ctx, userID, itemType, quantity); err != nil {
		return nil, err
	}
	total := price * quantity
	if err := tx.AdjustBalance(ctx, userID, total); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.accounts.Invalidate(userID)
	metrics.ItemsSoldToSystem.WithLabelValues(itemType).Add(float64(quantity))
	metrics.CoinsEarned.WithLabelValues("buyback").Add(float64(total))
	return &SellResult{ItemType: itemType, Quantity: quantity, UnitPrice: price, Total: total}, nil
}

func (s *service) ListForSale(ctx context.Context, userID, itemType string, quantity, unitPrice int) (*domain.MarketListing, error) {
	log := logger.FromContext(ctx)
	log.Info("ListForSale called", "userID", userID, "item", itemType, "quantity", quantity, "unitPrice", unitPrice)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidQuantity)
	}
	if unitPrice <= 0 {
		return nil, fmt.Errorf("%w: unit price must be positive", domain.ErrInvalidInput)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	// Escrow at listing time: stock leaves the pantry now, so the seller
	// cannot double-spend it while the listing is open.
	if err := tx.RemovePantry(ctx, userID, itemType, quantity); err != nil {
		return nil, err
	}

	listing := &domain.MarketListing{
		SellerID:     userID,
		ItemType:     itemType,
		Quantity:     quantity,
		PricePerUnit: unitPrice,
	}
	if err := tx.CreateListing(ctx, listing); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ListingsCreated.WithLabelValues(itemType).Inc()
	return listing, nil
}

func (s *service) BuyListing(ctx context.Context, buyerID, listingID string) (*domain.MarketListing, error) {
	log := logger.FromContext(ctx)
	log.Info("BuyListing called", "buyerID", buyerID, "listingID", listingID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != domain.ListingStatusActive {
		return nil, fmt.Errorf("%w: listing is %s", domain.ErrListingNotActive, listing.Status)
	}
	if listing.SellerID == buyerID {
		return nil, fmt.Errorf("%w: cannot buy own listing", domain.ErrSelfTrade)
	}

	total := listing.Total()
	balance, err := tx.GetBalanceForUpdate(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if balance < total {
		return nil, fmt.Errorf("%w: have %d, listing costs %d", domain.ErrInsufficientFunds, balance, total)
	}

	sold, err := tx.MarkListingSold(ctx, listingID, buyerID)
	if err != nil {
		return nil, err
	}
	if !sold {
		return nil, fmt.Errorf("%w: listing settled concurrently", domain.ErrListingNotActive)
	}

	if err := tx.AdjustBalance(ctx, buyerID, -total); err != nil {
		return nil, err
	}
	if err := tx.AdjustBalance(ctx, listing.SellerID, total); err != nil {
		return nil, err
	}
	if err := tx.AddPantry(ctx, buyerID, listing.ItemType, listing.Quantity); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.accounts.Invalidate(buyerID)
	s.accounts.Invalidate(listing.SellerID)
	metrics.ListingsSold.WithLabelValues(listing.ItemType).Inc()
	metrics.CoinsSpent.WithLabelValues("market").Add(float64(total))

	listing.Status = domain.ListingStatusSold
	listing.BuyerID = buyerID
	return listing, nil
}

func (s *service) CancelListing(ctx context.Context, sellerID, listingID string) error {
	log := logger.FromContext(ctx)
	log.Info("CancelListing called", "sellerID", sellerID, "listingID", listingID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.SellerID != sellerID {
		return fmt.Errorf("%w: not the seller", domain.ErrUnauthorized)
	}
	if listing.Status != domain.ListingStatusActive {
		return fmt.Errorf("%w: listing is %s", domain.ErrListingNotActive, listing.Status)
	}

	cancelled, err := tx.MarkListingCancelled(ctx, listingID)
	if err != nil {
		return err
	}
	if !cancelled {
		return fmt.Errorf("%w: listing settled concurrently", domain.ErrListingNotActive)
	}

	// Escrowed stock returns home.
	if err := tx.AddPantry(ctx, sellerID, listing.ItemType, listing.Quantity); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	metrics.ListingsCancelled.WithLabelValues(listing.ItemType).Inc()
	return nil
}

func (s *service) OpenListings(ctx context.Context, userID string) ([]domain.MarketListing, error) {
	return s.repo.OpenListings(ctx, userID)
}

func (s *service) MyListings(ctx context.Context, userID string) ([]domain.MarketListing, error) {
	return s.repo.ListingsBySeller(ctx, userID)
}
