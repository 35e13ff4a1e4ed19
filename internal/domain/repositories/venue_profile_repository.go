package repositories

import (
	"context"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

// VenueProfileRepository defines the interface for enrichment profile persistence.
type VenueProfileRepository interface {
	// Upsert creates the profile for a venue or replaces the existing one;
	// at most one profile exists per venue.
	Upsert(ctx context.Context, profile *entities.VenueProfile) error

	GetByVenueID(ctx context.Context, venueID string) (*entities.VenueProfile, error)

	DeleteByVenueID(ctx context.Context, venueID string) error
}
