package schemas

import (
	"github.com/Timothy0727/ModeMap/internal/domain/providers"
)

// DiscoverRequest asks for a nearby-venue discovery run around a point.
// Only presence and coordinate bounds are checked here: radius, price level
// and rank preference belong to the place-search provider's contract and are
// validated there, before any network call.
type DiscoverRequest struct {
	Lat            *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng            *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	RadiusM        int      `json:"radius_m,omitempty"`
	MaxResults     int      `json:"max_results,omitempty"`
	OpenNow        bool     `json:"open_now,omitempty"`
	PriceLevel     *int     `json:"price_level,omitempty"`
	RankPreference string   `json:"rank_preference,omitempty"`
}

const defaultDiscoverRadiusM = 1500

// ToQuery converts the request into a provider query, applying the default
// search radius when none was given.
func (s *DiscoverRequest) ToQuery() providers.NearbySearchQuery {
	radius := s.RadiusM
	if radius == 0 {
		radius = defaultDiscoverRadiusM
	}

	query := providers.NearbySearchQuery{
		RadiusM:        radius,
		MaxResults:     s.MaxResults,
		OpenNow:        s.OpenNow,
		PriceLevel:     s.PriceLevel,
		RankPreference: s.RankPreference,
	}
	if s.Lat != nil {
		query.Lat = *s.Lat
	}
	if s.Lng != nil {
		query.Lng = *s.Lng
	}
	return query
}
