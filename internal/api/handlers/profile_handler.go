package handlers

import (
	"net/http"

	"github.com/Timothy0727/ModeMap/internal/api/schemas"
	"github.com/Timothy0727/ModeMap/internal/application/services"
)

// ProfileHandler handles venue enrichment profile HTTP requests
type ProfileHandler struct {
	profileService *services.VenueProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.VenueProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile handles GET /api/venues/{id}/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("id")
	if venueID == "" {
		respondWithError(w, http.StatusBadRequest, "venue ID is required")
		return
	}

	profile, err := h.profileService.GetByVenueID(r.Context(), venueID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, schemas.VenueProfileFromEntity(profile))
}

// PutProfile handles PUT /api/venues/{id}/profile
func (h *ProfileHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("id")
	if venueID == "" {
		respondWithError(w, http.StatusBadRequest, "venue ID is required")
		return
	}

	var payload schemas.VenueProfileCreate
	if err := decodeJSONBody(r, &payload); err != nil {
		respondWithAppError(w, err)
		return
	}
	if err := schemas.Validate(payload); err != nil {
		respondWithAppError(w, err)
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), payload.ToEntity(venueID))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, schemas.VenueProfileFromEntity(profile))
}

// EnrichProfile handles POST /api/venues/{id}/profile/enrich
func (h *ProfileHandler) EnrichProfile(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("id")
	if venueID == "" {
		respondWithError(w, http.StatusBadRequest, "venue ID is required")
		return
	}

	profile, err := h.profileService.Enrich(r.Context(), venueID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, schemas.VenueProfileFromEntity(profile))
}
