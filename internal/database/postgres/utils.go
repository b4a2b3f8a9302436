package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// mapConflictError translates retryable PostgreSQL aborts into
// domain.ErrTransientConflict so callers can retry the whole transaction.
// Other errors pass through unchanged.
func mapConflictError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrCodeSerializationFailure, PgErrCodeDeadlockDetected, PgErrCodeLockNotAvailable:
			return fmt.Errorf("%w: %s", domain.ErrTransientConflict, pgErr.Code)
		}
	}
	return err
}

// isUniqueViolation reports whether err is a unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrCodeUniqueViolation
}

// isCheckViolation reports whether err is a CHECK constraint violation
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrCodeCheckViolation
}

// txBase implements repository.Tx and repository.LedgerTx on a pgx
// transaction. The feature transaction types embed it.
type txBase struct {
	tx pgx.Tx
}

func (b *txBase) Commit(ctx context.Context) error {
	if err := b.tx.Commit(ctx); err != nil {
		return mapConflictError(err)
	}
	return nil
}

func (b *txBase) Rollback(ctx context.Context) error {
	return b.tx.Rollback(ctx)
}

func (b *txBase) GetBalanceForUpdate(ctx context.Context, userID string) (int, error) {
	var balance int
	err := b.tx.QueryRow(ctx,
		`SELECT balance FROM profiles WHERE user_id = $1 FOR UPDATE`,
		userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
		}
		return 0, fmt.Errorf("failed to get balance: %w", mapConflictError(err))
	}
	return balance, nil
}

func (b *txBase) AdjustBalance(ctx context.Context, userID string, delta int) error {
	tag, err := b.tx.Exec(ctx,
		`UPDATE profiles SET balance = balance + $2, updated_at = now() WHERE user_id = $1`,
		userID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: balance would go negative", domain.ErrInsufficientFunds)
		}
		return fmt.Errorf("failed to adjust balance: %w", mapConflictError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
	}
	return nil
}

func (b *txBase) AdjustStitchcoins(ctx context.Context, userID string, delta int) error {
	tag, err := b.tx.Exec(ctx,
		`UPDATE profiles SET stitchcoins = stitchcoins + $2, updated_at = now() WHERE user_id = $1`,
		userID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: stitchcoins would go negative", domain.ErrInsufficientFunds)
		}
		return fmt.Errorf("failed to adjust stitchcoins: %w", mapConflictError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
	}
	return nil
}

func (b *txBase) AddPantry(ctx context.Context, userID, itemType string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidQuantity)
	}
	_, err := b.tx.Exec(ctx, `
		INSERT INTO pantry_items (user_id, item_type, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_type)
		DO UPDATE SET quantity = pantry_items.quantity + EXCLUDED.quantity, updated_at = now()`,
		userID, itemType, quantity)
	if err != nil {
		return fmt.Errorf("failed to add pantry stock: %w", mapConflictError(err))
	}
	return nil
}

func (b *txBase) RemovePantry(ctx context.Context, userID, itemType string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidQuantity)
	}

	current, err := b.GetPantryQuantityForUpdate(ctx, userID, itemType)
	if err != nil {
		return err
	}
	if current < quantity {
		return fmt.Errorf("%w: have %d %s, need %d", domain.ErrInsufficientStock, current, itemType, quantity)
	}

	// Rows never sit at zero: debiting the full stock deletes the row.
	if current == quantity {
		_, err = b.tx.Exec(ctx,
			`DELETE FROM pantry_items WHERE user_id = $1 AND item_type = $2`,
			userID, itemType)
	} else {
		_, err = b.tx.Exec(ctx,
			`UPDATE pantry_items SET quantity = quantity - $3, updated_at = now()
			 WHERE user_id = $1 AND item_type = $2`,
			userID, itemType, quantity)
	}
	if err != nil {
		return fmt.Errorf("failed to remove pantry stock: %w", mapConflictError(err))
	}
	return nil
}

func (b *txBase) GetPantryQuantityForUpdate(ctx context.Context, userID, itemType string) (int, error) {
	var quantity int
	err := b.tx.QueryRow(ctx,
		`SELECT quantity FROM pantry_items WHERE user_id = $1 AND item_type = $2 FOR UPDATE`,
		userID, itemType).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get pantry stock: %w", mapConflictError(err))
	}
	return quantity, nil
}
