package repository

import (
	"context"

	"github.com/plushka/stitchfarm/internal/domain"
)

// Account defines profile persistence operations
type Account interface {
	// GetProfile fetches a profile by external user ID.
	// Returns domain.ErrProfileNotFound when absent.
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)

	// EnsureProfile creates the profile if it does not exist and returns it.
	// Creation is idempotent under concurrent calls.
	EnsureProfile(ctx context.Context, userID, displayName string) (*domain.Profile, error)

	// GetPantry returns all pantry rows for a user, empty slice when none.
	GetPantry(ctx context.Context, userID string) ([]domain.PantryItem, error)
}
