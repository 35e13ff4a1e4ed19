package schemas

import (
	"time"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

// UserEventCreate is an inbound interaction event payload.
type UserEventCreate struct {
	UserID       *string                `json:"user_id,omitempty" validate:"omitempty,max=255"`
	EventType    string                 `json:"event_type" validate:"required,oneof=impression click save thumbs_up thumbs_down navigate"`
	VenueID      *string                `json:"venue_id,omitempty" validate:"omitempty,max=255"`
	Mode         *string                `json:"mode,omitempty" validate:"omitempty,oneof=work date quick_bite budget"`
	QueryContext map[string]interface{} `json:"query_context,omitempty"`
}

// ToEntity converts the payload into a domain event.
func (s *UserEventCreate) ToEntity() *entities.UserEvent {
	event := &entities.UserEvent{
		UserID:       s.UserID,
		EventType:    entities.EventType(s.EventType),
		VenueID:      s.VenueID,
		QueryContext: s.QueryContext,
	}
	if s.Mode != nil {
		mode := entities.Mode(*s.Mode)
		event.Mode = &mode
	}
	return event
}

// UserEventResponse is the outbound event representation.
type UserEventResponse struct {
	ID           string                 `json:"id"`
	UserID       *string                `json:"user_id,omitempty"`
	EventType    string                 `json:"event_type"`
	VenueID      *string                `json:"venue_id,omitempty"`
	Mode         *string                `json:"mode,omitempty"`
	QueryContext map[string]interface{} `json:"query_context,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// UserEventFromEntity projects an event onto the wire representation.
func UserEventFromEntity(event *entities.UserEvent) *UserEventResponse {
	if event == nil {
		return nil
	}

	response := &UserEventResponse{
		ID:           event.ID,
		UserID:       event.UserID,
		EventType:    string(event.EventType),
		VenueID:      event.VenueID,
		QueryContext: event.QueryContext,
		CreatedAt:    event.CreatedAt,
	}
	if event.Mode != nil {
		mode := string(*event.Mode)
		response.Mode = &mode
	}
	return response
}

// UserEventsFromEntities projects an event list, preserving order.
func UserEventsFromEntities(events []*entities.UserEvent) []*UserEventResponse {
	responses := make([]*UserEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, UserEventFromEntity(event))
	}
	return responses
}
