package entities

import (
	"encoding/json"
	"time"
)

// Venue represents a place of interest sourced from an external search provider.
type Venue struct {
	ID           string      `json:"id" db:"id"`
	ProviderID   string      `json:"provider_id" db:"provider_id"`
	ProviderName string      `json:"provider_name" db:"provider_name"`
	Name         string      `json:"name" db:"name"`
	Categories   []string    `json:"categories" db:"-"`
	Lat          float64     `json:"lat" db:"lat"`
	Lng          float64     `json:"lng" db:"lng"`
	Address      *string     `json:"address,omitempty" db:"address"`
	Rating       *float64    `json:"rating,omitempty" db:"rating"`
	PriceLevel   *int        `json:"price_level,omitempty" db:"price_level"`
	Hours        *VenueHours `json:"hours,omitempty" db:"-"`
	RawHours     *string     `json:"raw_hours,omitempty" db:"raw_hours"`
	LastSeenAt   time.Time   `json:"last_seen_at" db:"last_seen_at"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// VenueHours is the structured opening-hours value attached to a venue.
// Periods carries the provider's raw period list untouched.
type VenueHours struct {
	WeekdayText []string        `json:"weekday_text"`
	OpenNow     bool            `json:"open_now"`
	Periods     json.RawMessage `json:"periods,omitempty"`
}

// VenueCreate is a validated venue-creation record, the unit the place-search
// normalizer emits and the persistence layer consumes.
type VenueCreate struct {
	ProviderID   string      `json:"provider_id"`
	ProviderName string      `json:"provider_name"`
	Name         string      `json:"name"`
	Categories   []string    `json:"categories"`
	Lat          float64     `json:"lat"`
	Lng          float64     `json:"lng"`
	Address      *string     `json:"address,omitempty"`
	Rating       *float64    `json:"rating,omitempty"`
	PriceLevel   *int        `json:"price_level,omitempty"`
	Hours        *VenueHours `json:"hours,omitempty"`
	RawHours     *string     `json:"raw_hours,omitempty"`
}

// VenueUpdate carries a partial venue update. Nil fields are left untouched.
type VenueUpdate struct {
	Name       *string     `json:"name,omitempty"`
	Categories []string    `json:"categories,omitempty"`
	Lat        *float64    `json:"lat,omitempty"`
	Lng        *float64    `json:"lng,omitempty"`
	Address    *string     `json:"address,omitempty"`
	Rating     *float64    `json:"rating,omitempty"`
	PriceLevel *int        `json:"price_level,omitempty"`
	Hours      *VenueHours `json:"hours,omitempty"`
	RawHours   *string     `json:"raw_hours,omitempty"`
}

// Apply copies the provided fields onto the venue, leaving omitted fields as-is.
func (u *VenueUpdate) Apply(v *Venue) {
	if u.Name != nil {
		v.Name = *u.Name
	}
	if u.Categories != nil {
		v.Categories = u.Categories
	}
	if u.Lat != nil {
		v.Lat = *u.Lat
	}
	if u.Lng != nil {
		v.Lng = *u.Lng
	}
	if u.Address != nil {
		v.Address = u.Address
	}
	if u.Rating != nil {
		v.Rating = u.Rating
	}
	if u.PriceLevel != nil {
		v.PriceLevel = u.PriceLevel
	}
	if u.Hours != nil {
		v.Hours = u.Hours
	}
	if u.RawHours != nil {
		v.RawHours = u.RawHours
	}
}
