package entities

import "time"

// EventType enumerates the user interaction kinds that are recorded.
type EventType string

const (
	EventTypeImpression EventType = "impression"
	EventTypeClick      EventType = "click"
	EventTypeSave       EventType = "save"
	EventTypeThumbsUp   EventType = "thumbs_up"
	EventTypeThumbsDown EventType = "thumbs_down"
	EventTypeNavigate   EventType = "navigate"
)

// IsValid reports whether the event type is one of the known kinds.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeImpression, EventTypeClick, EventTypeSave,
		EventTypeThumbsUp, EventTypeThumbsDown, EventTypeNavigate:
		return true
	}
	return false
}

// Mode enumerates the recommendation modes a request can be tagged with.
type Mode string

const (
	ModeWork      Mode = "work"
	ModeDate      Mode = "date"
	ModeQuickBite Mode = "quick_bite"
	ModeBudget    Mode = "budget"
)

// IsValid reports whether the mode is one of the known tags.
func (m Mode) IsValid() bool {
	switch m {
	case ModeWork, ModeDate, ModeQuickBite, ModeBudget:
		return true
	}
	return false
}

// UserEvent is an append-only interaction record, optionally tied to a venue.
// The venue reference is weak: it is nulled when the venue is deleted.
type UserEvent struct {
	ID           string                 `json:"id" db:"id"`
	UserID       *string                `json:"user_id,omitempty" db:"user_id"`
	EventType    EventType              `json:"event_type" db:"event_type"`
	VenueID      *string                `json:"venue_id,omitempty" db:"venue_id"`
	Mode         *Mode                  `json:"mode,omitempty" db:"mode"`
	QueryContext map[string]interface{} `json:"query_context,omitempty" db:"-"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
}
