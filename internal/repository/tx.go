package repository

import "context"

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// LedgerTx bundles the ledger mutations shared by every transaction
// function: balance and pantry movements. Implementations must only be
// reachable from inside an open transaction so that CHECK constraints and
// row locks make the read-modify-write atomic.
type LedgerTx interface {
	// GetBalanceForUpdate reads a profile's coin balance with a FOR UPDATE lock.
	GetBalanceForUpdate(ctx context.Context, userID string) (int, error)

	// AdjustBalance applies a signed delta to a profile's coin balance.
	// Returns domain.ErrInsufficientFunds when the delta would go negative.
	AdjustBalance(ctx context.Context, userID string, delta int) error

	// AdjustStitchcoins applies a signed delta to the secondary currency.
	AdjustStitchcoins(ctx context.Context, userID string, delta int) error

	// AddPantry credits an item kind, creating the row on first credit.
	AddPantry(ctx context.Context, userID, itemType string, quantity int) error

	// RemovePantry debits an item kind, deleting the row at zero.
	// Returns domain.ErrInsufficientStock when stock is short.
	RemovePantry(ctx context.Context, userID, itemType string, quantity int) error

	// GetPantryQuantityForUpdate reads current stock with a FOR UPDATE lock;
	// missing rows read as zero.
	GetPantryQuantityForUpdate(ctx context.Context, userID, itemType string) (int, error)
}
