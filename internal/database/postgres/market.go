package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/repository"
)

type marketRepository struct {
	db *pgxpool.Pool
}

// NewMarketRepository creates a new PostgreSQL market repository
func NewMarketRepository(db *pgxpool.Pool) repository.Market {
	return &marketRepository{db: db}
}

const listingColumns = `id, seller_id, buyer_id, item_type, quantity, price_per_unit, status, created_at`

func scanListing(row pgx.Row) (*domain.MarketListing, error) {
	var l domain.MarketListing
	var buyerID *string
	err := row.Scan(&l.ID, &l.SellerID, &buyerID, &l.ItemType, &l.Quantity,
		&l.PricePerUnit, &l.Status, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if buyerID != nil {
		l.BuyerID = *buyerID
	}
	return &l, nil
}

func (r *marketRepository) OpenListings(ctx context.Context, excludeSeller string) ([]domain.MarketListing, error) {
	query := `SELECT ` + listingColumns + ` FROM market_listings WHERE status = 'active'`
	args := []interface{}{}
	if excludeSeller != "" {
		query += ` AND seller_id <> $1`
		args = append(args, excludeSeller)
	}
	query += ` ORDER BY created_at DESC`

	return r.queryListings(ctx, query, args...)
}

func (r *marketRepository) ListingsBySeller(ctx context.Context, sellerID string) ([]domain.MarketListing, error) {
	query := `SELECT ` + listingColumns + ` FROM market_listings WHERE seller_id = $1 ORDER BY created_at DESC`
	return r.queryListings(ctx, query, sellerID)
}

func (r *marketRepository) queryListings(ctx context.Context, query string, args ...interface{}) ([]domain.MarketListing, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	listings := []domain.MarketListing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, *listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listing rows: %w", err)
	}
	return listings, nil
}

func (r *marketRepository) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &marketTx{txBase{tx: tx}}, nil
}

type marketTx struct {
	txBase
}

func (t *marketTx) GetListingForUpdate(ctx context.Context, listingID string) (*domain.MarketListing, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM market_listings WHERE id = $1 FOR UPDATE`,
		listingID)
	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, listingID)
		}
		return nil, fmt.Errorf("failed to lock listing: %w", mapConflictError(err))
	}
	return listing, nil
}

func (t *marketTx) CreateListing(ctx context.Context, listing *domain.MarketListing) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO market_listings (seller_id, item_type, quantity, price_per_unit, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		listing.SellerID, listing.ItemType, listing.Quantity, listing.PricePerUnit,
		domain.ListingStatusActive).Scan(&listing.ID, &listing.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", mapConflictError(err))
	}
	listing.Status = domain.ListingStatusActive
	return nil
}

// MarkListingSold is a conditional transition: the WHERE status guard means a
// listing bought or cancelled by a concurrent transaction affects zero rows.
func (t *marketTx) MarkListingSold(ctx context.Context, listingID, buyerID string) (bool, error) {
	tag, err := t.tx.Exec(ctx,
		`UPDATE market_listings SET status = $3, buyer_id = $2 WHERE id = $1 AND status = $4`,
		listingID, buyerID, domain.ListingStatusSold, domain.ListingStatusActive)
	if err != nil {
		return false, fmt.Errorf("failed to mark listing sold: %w", mapConflictError(err))
	}
	return tag.RowsAffected() == 1, nil
}

func (t *marketTx) MarkListingCancelled(ctx context.Context, listingID string) (bool, error) {
	tag, err := t.tx.Exec(ctx,
		`UPDATE market_listings SET status = $2 WHERE id = $1 AND status = $3`,
		listingID, domain.ListingStatusCancelled, domain.ListingStatusActive)
	if err != nil {
		return false, fmt.Errorf("failed to mark listing cancelled: %w", mapConflictError(err))
	}
	return tag.RowsAffected() == 1, nil
}
