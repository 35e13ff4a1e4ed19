package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/providers"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
)

// Cache TTLs (in seconds)
const (
	venueByIDTTL = 300 // 5 minutes for single venue reads
)

// CachedVenueAdapter wraps a VenueRepository with cache-aside reads for
// venue lookups and invalidation on every write.
type CachedVenueAdapter struct {
	adapter repositories.VenueRepository
	cache   providers.CacheProvider
}

// NewCachedVenueAdapter creates a new cached venue adapter
func NewCachedVenueAdapter(adapter repositories.VenueRepository, cache providers.CacheProvider) repositories.VenueRepository {
	return &CachedVenueAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

func venueCacheKey(id string) string {
	return fmt.Sprintf("venue:%s", id)
}

// GetByID retrieves a venue by ID with caching
func (a *CachedVenueAdapter) GetByID(ctx context.Context, id string) (*entities.Venue, error) {
	cacheKey := venueCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
		var venue entities.Venue
		if err := json.Unmarshal(cached, &venue); err == nil {
			return &venue, nil
		}
		log.Warn().Str("venue_id", id).Msg("failed to unmarshal cached venue, falling through to database")
	}

	venue, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response.
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(venue); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, venueByIDTTL); err != nil {
				log.Warn().Err(err).Str("venue_id", id).Msg("failed to cache venue")
			}
		}
	}()

	return venue, nil
}

// GetByProviderID bypasses the cache; provider-id lookups only happen on the
// discovery write path, which invalidates anyway.
func (a *CachedVenueAdapter) GetByProviderID(ctx context.Context, providerID string) (*entities.Venue, error) {
	return a.adapter.GetByProviderID(ctx, providerID)
}

// Create delegates and leaves nothing stale to invalidate
func (a *CachedVenueAdapter) Create(ctx context.Context, venue *entities.Venue) error {
	return a.adapter.Create(ctx, venue)
}

// Update delegates and invalidates the cached venue
func (a *CachedVenueAdapter) Update(ctx context.Context, venue *entities.Venue) error {
	if err := a.adapter.Update(ctx, venue); err != nil {
		return err
	}
	a.invalidate(ctx, venue.ID)
	return nil
}

// List delegates; listings are not cached (filters make keys low-hit)
func (a *CachedVenueAdapter) List(ctx context.Context, filter repositories.VenueFilter) ([]*entities.Venue, error) {
	return a.adapter.List(ctx, filter)
}

// UpsertFromCreate delegates and invalidates the touched venue
func (a *CachedVenueAdapter) UpsertFromCreate(ctx context.Context, record *entities.VenueCreate) (*entities.Venue, bool, error) {
	venue, created, err := a.adapter.UpsertFromCreate(ctx, record)
	if err != nil {
		return nil, false, err
	}
	if !created {
		a.invalidate(ctx, venue.ID)
	}
	return venue, created, nil
}

func (a *CachedVenueAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, venueCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("venue_id", id).Msg("failed to invalidate cached venue")
	}
}
