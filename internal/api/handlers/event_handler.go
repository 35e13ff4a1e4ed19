package handlers

import (
	"net/http"

	"github.com/Timothy0727/ModeMap/internal/api/schemas"
	"github.com/Timothy0727/ModeMap/internal/application/services"
	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
)

// EventHandler handles user interaction event HTTP requests
type EventHandler struct {
	eventService *services.UserEventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.UserEventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var payload schemas.UserEventCreate
	if err := decodeJSONBody(r, &payload); err != nil {
		respondWithAppError(w, err)
		return
	}
	if err := schemas.Validate(payload); err != nil {
		respondWithAppError(w, err)
		return
	}

	event, err := h.eventService.Create(r.Context(), payload.ToEntity())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, schemas.UserEventFromEntity(event))
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.UserEventFilter{
		UserID:    query.Get("user_id"),
		VenueID:   query.Get("venue_id"),
		EventType: entities.EventType(query.Get("event_type")),
		Limit:     parseIntParam(query.Get("limit"), 100),
	}

	if filter.EventType != "" && !filter.EventType.IsValid() {
		respondWithError(w, http.StatusBadRequest, "unknown event type")
		return
	}

	events, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": schemas.UserEventsFromEntities(events),
		"count":  len(events),
	})
}
