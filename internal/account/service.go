package account

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/logger"
	"github.com/plushka/stitchfarm/internal/repository"
)

// Service defines the interface for account operations
type Service interface {
	// EnsureProfile creates the profile on first sight and returns it.
	EnsureProfile(ctx context.Context, userID, displayName string) (*domain.Profile, error)

	// Profile returns the profile, served from cache when fresh.
	Profile(ctx context.Context, userID string) (*domain.Profile, error)

	// Pantry returns the user's current stock, never cached.
	Pantry(ctx context.Context, userID string) ([]domain.PantryItem, error)

	// Invalidate drops the cached profile after a balance mutation.
	Invalidate(userID string)

	CacheStats() CacheStats
}

// CacheStats reports profile cache effectiveness
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

type service struct {
	repo   repository.Account
	cache  *profileCache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewService creates a new account service with a profile cache of the
// given size and TTL.
func NewService(repo repository.Account, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:  repo,
		cache: newProfileCache(cacheSize, cacheTTL),
	}
}

func (s *service) EnsureProfile(ctx context.Context, userID, displayName string) (*domain.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", domain.ErrInvalidInput)
	}

	profile, err := s.repo.EnsureProfile(ctx, userID, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}
	s.cache.Set(userID, profile)
	return profile, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	log := logger.FromContext(ctx)

	if profile, ok := s.cache.Get(userID); ok {
		s.hits.Add(1)
		log.Debug("Profile cache hit", "userID", userID)
		return profile, nil
	}
	s.misses.Add(1)

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(userID, profile)
	return profile, nil
}

func (s *service) Pantry(ctx context.Context, userID string) ([]domain.PantryItem, error) {
	return s.repo.GetPantry(ctx, userID)
}

func (s *service) Invalidate(userID string) {
	s.cache.Invalidate(userID)
}

func (s *service) CacheStats() CacheStats {
	return CacheStats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
}
