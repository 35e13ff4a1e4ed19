package handlers

import (
	"net/http"

	"github.com/Timothy0727/ModeMap/internal/api/schemas"
	"github.com/Timothy0727/ModeMap/internal/application/services"
)

// DiscoveryHandler handles venue discovery HTTP requests
type DiscoveryHandler struct {
	discoveryService *services.DiscoveryService
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(discoveryService *services.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryService: discoveryService,
	}
}

// DiscoverVenues handles POST /api/venues/discover. It runs a nearby search
// against the place provider and returns the persisted venues in provider
// order.
func (h *DiscoveryHandler) DiscoverVenues(w http.ResponseWriter, r *http.Request) {
	var payload schemas.DiscoverRequest
	if err := decodeJSONBody(r, &payload); err != nil {
		respondWithAppError(w, err)
		return
	}
	if err := schemas.Validate(payload); err != nil {
		respondWithAppError(w, err)
		return
	}

	venues, err := h.discoveryService.Discover(r.Context(), payload.ToQuery())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"venues": schemas.VenuesFromEntities(venues),
		"count":  len(venues),
	})
}
