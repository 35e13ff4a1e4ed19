package repositories

import (
	"context"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

// VenueSearchQuery is a text search with an optional geo restriction.
type VenueSearchQuery struct {
	Text     string
	Lat      *float64
	Lng      *float64
	RadiusKm float64
	Limit    int
}

// VenueSearchRepository defines the interface for the venue search index.
type VenueSearchRepository interface {
	Index(ctx context.Context, venue *entities.Venue) error

	Search(ctx context.Context, query VenueSearchQuery) ([]*entities.Venue, error)

	Remove(ctx context.Context, venueID string) error
}
