package handlers

import (
	"net/http"
	"strconv"

	"github.com/Timothy0727/ModeMap/internal/api/schemas"
	"github.com/Timothy0727/ModeMap/internal/application/services"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
)

// VenueHandler handles venue-related HTTP requests
type VenueHandler struct {
	venueService *services.VenueService
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(venueService *services.VenueService) *VenueHandler {
	return &VenueHandler{
		venueService: venueService,
	}
}

// CreateVenue handles POST /api/venues
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var payload schemas.VenueCreate
	if err := decodeJSONBody(r, &payload); err != nil {
		respondWithAppError(w, err)
		return
	}
	if err := schemas.Validate(payload); err != nil {
		respondWithAppError(w, err)
		return
	}

	venue, created, err := h.venueService.Create(r.Context(), payload.ToEntity())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondWithJSON(w, status, schemas.VenueFromEntity(venue))
}

// GetVenue handles GET /api/venues/{id}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("id")
	if venueID == "" {
		respondWithError(w, http.StatusBadRequest, "venue ID is required")
		return
	}

	venue, err := h.venueService.GetByID(r.Context(), venueID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, schemas.VenueFromEntity(venue))
}

// ListVenues handles GET /api/venues
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.VenueFilter{
		ProviderName: query.Get("provider"),
		Category:     query.Get("category"),
		Limit:        parseIntParam(query.Get("limit"), 50),
		Offset:       parseIntParam(query.Get("offset"), 0),
	}
	if minRating := query.Get("min_rating"); minRating != "" {
		if v, err := strconv.ParseFloat(minRating, 64); err == nil {
			filter.MinRating = &v
		}
	}
	if maxPrice := query.Get("max_price"); maxPrice != "" {
		if v, err := strconv.Atoi(maxPrice); err == nil {
			filter.MaxPrice = &v
		}
	}

	venues, err := h.venueService.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"venues": schemas.VenuesFromEntities(venues),
		"count":  len(venues),
	})
}

// UpdateVenue handles PATCH /api/venues/{id}
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("id")
	if venueID == "" {
		respondWithError(w, http.StatusBadRequest, "venue ID is required")
		return
	}

	var payload schemas.VenueUpdate
	if err := decodeJSONBody(r, &payload); err != nil {
		respondWithAppError(w, err)
		return
	}
	if err := schemas.Validate(payload); err != nil {
		respondWithAppError(w, err)
		return
	}

	venue, err := h.venueService.Update(r.Context(), venueID, payload.ToEntity())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, schemas.VenueFromEntity(venue))
}

// SearchVenues handles GET /api/venues/search
func (h *VenueHandler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	searchQuery := repositories.VenueSearchQuery{
		Text:  query.Get("q"),
		Limit: parseIntParam(query.Get("limit"), 20),
	}
	if lat := query.Get("lat"); lat != "" {
		if v, err := strconv.ParseFloat(lat, 64); err == nil {
			searchQuery.Lat = &v
		}
	}
	if lng := query.Get("lng"); lng != "" {
		if v, err := strconv.ParseFloat(lng, 64); err == nil {
			searchQuery.Lng = &v
		}
	}
	if radius := query.Get("radius_km"); radius != "" {
		if v, err := strconv.ParseFloat(radius, 64); err == nil {
			searchQuery.RadiusKm = v
		}
	}

	venues, err := h.venueService.Search(r.Context(), searchQuery)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"venues": schemas.VenuesFromEntities(venues),
		"count":  len(venues),
	})
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
