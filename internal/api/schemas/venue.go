package schemas

import (
	"encoding/json"
	"time"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

// VenueHours mirrors the structured opening-hours value on the wire.
// Periods carries the provider's raw period objects through untouched.
type VenueHours struct {
	WeekdayText []string        `json:"weekday_text"`
	OpenNow     bool            `json:"open_now"`
	Periods     json.RawMessage `json:"periods,omitempty"`
}

// VenueCreate is an inbound venue-creation payload.
type VenueCreate struct {
	ProviderID   string      `json:"provider_id" validate:"required,max=255"`
	ProviderName string      `json:"provider_name" validate:"required,max=50"`
	Name         string      `json:"name" validate:"required,max=255"`
	Categories   []string    `json:"categories"`
	Lat          *float64    `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng          *float64    `json:"lng" validate:"required,gte=-180,lte=180"`
	Address      *string     `json:"address,omitempty"`
	Rating       *float64    `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	PriceLevel   *int        `json:"price_level,omitempty" validate:"omitempty,gte=0,lte=4"`
	Hours        *VenueHours `json:"hours,omitempty"`
	RawHours     *string     `json:"raw_hours,omitempty"`
}

// ToEntity converts the payload into a domain creation record.
func (s *VenueCreate) ToEntity() *entities.VenueCreate {
	record := &entities.VenueCreate{
		ProviderID:   s.ProviderID,
		ProviderName: s.ProviderName,
		Name:         s.Name,
		Categories:   s.Categories,
		Address:      s.Address,
		Rating:       s.Rating,
		PriceLevel:   s.PriceLevel,
		RawHours:     s.RawHours,
	}
	if s.Lat != nil {
		record.Lat = *s.Lat
	}
	if s.Lng != nil {
		record.Lng = *s.Lng
	}
	if s.Hours != nil {
		record.Hours = &entities.VenueHours{
			WeekdayText: s.Hours.WeekdayText,
			OpenNow:     s.Hours.OpenNow,
			Periods:     s.Hours.Periods,
		}
	}
	return record
}

// VenueUpdate is a partial-update payload. Omitted fields stay untouched.
type VenueUpdate struct {
	Name       *string     `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Categories []string    `json:"categories,omitempty"`
	Lat        *float64    `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lng        *float64    `json:"lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Address    *string     `json:"address,omitempty"`
	Rating     *float64    `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	PriceLevel *int        `json:"price_level,omitempty" validate:"omitempty,gte=0,lte=4"`
	Hours      *VenueHours `json:"hours,omitempty"`
	RawHours   *string     `json:"raw_hours,omitempty"`
}

// ToEntity converts the payload into a domain update record.
func (s *VenueUpdate) ToEntity() *entities.VenueUpdate {
	update := &entities.VenueUpdate{
		Name:       s.Name,
		Categories: s.Categories,
		Lat:        s.Lat,
		Lng:        s.Lng,
		Address:    s.Address,
		Rating:     s.Rating,
		PriceLevel: s.PriceLevel,
		RawHours:   s.RawHours,
	}
	if s.Hours != nil {
		update.Hours = &entities.VenueHours{
			WeekdayText: s.Hours.WeekdayText,
			OpenNow:     s.Hours.OpenNow,
			Periods:     s.Hours.Periods,
		}
	}
	return update
}

// VenueResponse is the outbound venue representation.
type VenueResponse struct {
	ID           string               `json:"id"`
	ProviderID   string               `json:"provider_id"`
	ProviderName string               `json:"provider_name"`
	Name         string               `json:"name"`
	Categories   []string             `json:"categories"`
	Lat          float64              `json:"lat"`
	Lng          float64              `json:"lng"`
	Address      *string              `json:"address,omitempty"`
	Rating       *float64             `json:"rating,omitempty"`
	PriceLevel   *int                 `json:"price_level,omitempty"`
	Hours        *entities.VenueHours `json:"hours,omitempty"`
	RawHours     *string              `json:"raw_hours,omitempty"`
	LastSeenAt   time.Time            `json:"last_seen_at"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// VenueFromEntity projects a venue onto the wire representation.
func VenueFromEntity(venue *entities.Venue) *VenueResponse {
	if venue == nil {
		return nil
	}

	categories := venue.Categories
	if categories == nil {
		categories = []string{}
	}

	return &VenueResponse{
		ID:           venue.ID,
		ProviderID:   venue.ProviderID,
		ProviderName: venue.ProviderName,
		Name:         venue.Name,
		Categories:   categories,
		Lat:          venue.Lat,
		Lng:          venue.Lng,
		Address:      venue.Address,
		Rating:       venue.Rating,
		PriceLevel:   venue.PriceLevel,
		Hours:        venue.Hours,
		RawHours:     venue.RawHours,
		LastSeenAt:   venue.LastSeenAt,
		CreatedAt:    venue.CreatedAt,
		UpdatedAt:    venue.UpdatedAt,
	}
}

// VenuesFromEntities projects a venue list, preserving order.
func VenuesFromEntities(venues []*entities.Venue) []*VenueResponse {
	responses := make([]*VenueResponse, 0, len(venues))
	for _, venue := range venues {
		responses = append(responses, VenueFromEntity(venue))
	}
	return responses
}

// VenueWithProfileResponse attaches the enrichment profile when one exists.
type VenueWithProfileResponse struct {
	VenueResponse
	Profile *VenueProfileResponse `json:"profile,omitempty"`
}
