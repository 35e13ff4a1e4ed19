package repositories

import (
	"context"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

// VenueFilter narrows venue listings.
type VenueFilter struct {
	ProviderName string
	Category     string
	MinRating    *float64
	MaxPrice     *int
	Limit        int
	Offset       int
}

// VenueRepository defines the interface for venue persistence.
type VenueRepository interface {
	Create(ctx context.Context, venue *entities.Venue) error

	GetByID(ctx context.Context, id string) (*entities.Venue, error)

	// GetByProviderID looks a venue up by its provider-scoped identity.
	GetByProviderID(ctx context.Context, providerID string) (*entities.Venue, error)

	Update(ctx context.Context, venue *entities.Venue) error

	List(ctx context.Context, filter VenueFilter) ([]*entities.Venue, error)

	// UpsertFromCreate inserts the record on first observation or refreshes
	// the stored venue (and bumps last_seen_at) on re-observation. Returns
	// the persisted venue and whether it was newly created.
	UpsertFromCreate(ctx context.Context, record *entities.VenueCreate) (*entities.Venue, bool, error)
}
