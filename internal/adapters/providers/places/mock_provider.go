package places

import (
	"context"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/providers"
)

// MockPlaceSearchProvider implements a keyless place-search provider for
// local development and testing.
type MockPlaceSearchProvider struct{}

// NewMockPlaceSearchProvider creates a new mock place-search provider
func NewMockPlaceSearchProvider() providers.PlaceSearchProvider {
	return &MockPlaceSearchProvider{}
}

// SearchNearby returns a fixed set of venues offset slightly from the query point.
func (m *MockPlaceSearchProvider) SearchNearby(ctx context.Context, query providers.NearbySearchQuery) ([]*entities.VenueCreate, error) {
	two := 2
	rating := 4.6
	address := "66 Mint St, San Francisco, CA 94103"
	raw := "Monday: 7:00 AM - 6:00 PM"

	fixtures := []*entities.VenueCreate{
		{
			ProviderID:   "mock-cafe-1",
			ProviderName: "mock",
			Name:         "Mock Roastery",
			Categories:   []string{"Cafe", "Coffee Shop"},
			Lat:          query.Lat + 0.001,
			Lng:          query.Lng + 0.001,
			Address:      &address,
			Rating:       &rating,
			PriceLevel:   &two,
			RawHours:     &raw,
			Hours: &entities.VenueHours{
				WeekdayText: []string{raw},
				OpenNow:     true,
			},
		},
		{
			ProviderID:   "mock-bar-1",
			ProviderName: "mock",
			Name:         "Mock Taproom",
			Categories:   []string{"Bar"},
			Lat:          query.Lat - 0.001,
			Lng:          query.Lng - 0.001,
		},
	}

	max := query.MaxResults
	if max <= 0 || max > len(fixtures) {
		max = len(fixtures)
	}
	return fixtures[:max], nil
}
