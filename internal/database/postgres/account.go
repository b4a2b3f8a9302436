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

type accountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *pgxpool.Pool) repository.Account {
	return &accountRepository{db: db}
}

const profileColumns = `id, user_id, display_name, balance, stitchcoins, reputation, reviews_count, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.DisplayName, &p.Balance, &p.Stitchcoins,
		&p.Reputation, &p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *accountRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// EnsureProfile creates the profile row and its starting farm layout on
// first sight of a principal. Concurrent calls race on the unique user_id;
// the loser's insert is a no-op and both return the same row.
func (r *accountRepository) EnsureProfile(ctx context.Context, userID, displayName string) (*domain.Profile, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO profiles (user_id, display_name) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", mapConflictError(err))
	}

	if tag.RowsAffected() == 1 {
		for pos := 1; pos <= StartingPlots; pos++ {
			if _, err := tx.Exec(ctx,
				`INSERT INTO farm_plots (user_id, position) VALUES ($1, $2)`, userID, pos); err != nil {
				return nil, fmt.Errorf("failed to seed starting plots: %w", err)
			}
		}
		for pos := 1; pos <= StartingTreeSlots; pos++ {
			if _, err := tx.Exec(ctx,
				`INSERT INTO orchard_trees (user_id, position) VALUES ($1, $2)`, userID, pos); err != nil {
				return nil, fmt.Errorf("failed to seed starting tree slots: %w", err)
			}
		}
		for pos := 1; pos <= StartingPens; pos++ {
			if _, err := tx.Exec(ctx,
				`INSERT INTO animal_pens (user_id, position) VALUES ($1, $2)`, userID, pos); err != nil {
				return nil, fmt.Errorf("failed to seed starting pens: %w", err)
			}
		}
	}

	row := tx.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile after ensure: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, mapConflictError(err))
	}
	return profile, nil
}

func (r *accountRepository) GetPantry(ctx context.Context, userID string) ([]domain.PantryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, item_type, quantity, updated_at
		FROM pantry_items
		WHERE user_id = $1
		ORDER BY item_type`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pantry: %w", err)
	}
	defer rows.Close()

	items := []domain.PantryItem{}
	for rows.Next() {
		var item domain.PantryItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ItemType, &item.Quantity, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pantry item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pantry rows: %w", err)
	}
	return items, nil
}
