package entities

import (
	"time"

	"github.com/google/uuid"
)

// Venue event bus kinds.
const (
	VenueEventDiscovered = "venue.discovered"
	VenueEventUpdated    = "venue.updated"
	VenueEventProfiled   = "venue.profiled"
)

// VenueEvent is the payload published on the event bus when a venue changes.
type VenueEvent struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	VenueID   string    `json:"venue_id"`
	Provider  string    `json:"provider,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewVenueEvent builds an event with a fresh id and timestamp.
func NewVenueEvent(kind, venueID, provider string) *VenueEvent {
	return &VenueEvent{
		ID:        uuid.New().String(),
		Kind:      kind,
		VenueID:   venueID,
		Provider:  provider,
		Timestamp: time.Now().UTC(),
	}
}
