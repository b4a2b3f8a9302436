package repository

import (
	"context"

	"github.com/plushka/stitchfarm/internal/domain"
)

// Market defines persistence operations for player-to-player listings
type Market interface {
	// OpenListings returns active listings, newest first. When excludeSeller
	// is non-empty that seller's own listings are filtered out.
	OpenListings(ctx context.Context, excludeSeller string) ([]domain.MarketListing, error)

	// ListingsBySeller returns all listings a seller has ever posted.
	ListingsBySeller(ctx context.Context, sellerID string) ([]domain.MarketListing, error)

	BeginTx(ctx context.Context) (MarketTx, error)
}

// MarketTx carries the market mutations that must run inside one transaction
type MarketTx interface {
	Tx
	LedgerTx

	// GetListingForUpdate locks one listing row.
	// Returns domain.ErrListingNotFound when absent.
	GetListingForUpdate(ctx context.Context, listingID string) (*domain.MarketListing, error)

	// CreateListing inserts a new active listing and fills in its ID.
	CreateListing(ctx context.Context, listing *domain.MarketListing) error

	// MarkListingSold flips an active listing to sold, recording the buyer.
	// Returns false when the listing was no longer active.
	MarkListingSold(ctx context.Context, listingID, buyerID string) (bool, error)

	// MarkListingCancelled flips an active listing to cancelled.
	// Returns false when the listing was no longer active.
	MarkListingCancelled(ctx context.Context, listingID string) (bool, error)
}
