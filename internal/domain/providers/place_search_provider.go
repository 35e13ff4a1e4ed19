package providers

import (
	"context"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

// RankPreference values accepted by the place-search contract.
const (
	RankByDistance   = "DISTANCE"
	RankByPopularity = "POPULARITY"
)

// NearbySearchQuery describes a single nearby-venue search.
type NearbySearchQuery struct {
	Lat        float64
	Lng        float64
	RadiusM    int
	MaxResults int
	OpenNow    bool
	// PriceLevel filters by price bucket 0-4 when set.
	PriceLevel *int
	// RankPreference is DISTANCE or POPULARITY when set.
	RankPreference string
}

// PlaceSearchProvider defines the interface for external place-search services.
// Implementations issue exactly one remote request per SearchNearby call and
// return venue-creation records in the order the service produced them.
type PlaceSearchProvider interface {
	SearchNearby(ctx context.Context, query NearbySearchQuery) ([]*entities.VenueCreate, error)
}
