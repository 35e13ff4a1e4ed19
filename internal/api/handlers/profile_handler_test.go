package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timothy0727/ModeMap/internal/application/services"
	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/providers"
)

func newProfileTestMux(repo *stubProfileRepo, venueRepo *stubVenueRepo, enricher *stubEnricher) *http.ServeMux {
	var enrichmentProvider providers.ProfileEnrichmentProvider
	if enricher != nil {
		enrichmentProvider = enricher
	}
	service := services.NewVenueProfileService(repo, venueRepo, enrichmentProvider, nil)
	handler := NewProfileHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/venues/{id}/profile", handler.GetProfile)
	mux.HandleFunc("PUT /api/venues/{id}/profile", handler.PutProfile)
	mux.HandleFunc("POST /api/venues/{id}/profile/enrich", handler.EnrichProfile)
	return mux
}

func TestGetProfileNotFound(t *testing.T) {
	mux := newProfileTestMux(newStubProfileRepo(), newStubVenueRepo(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/venues/v1/profile", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPutProfile(t *testing.T) {
	venueRepo := newStubVenueRepo()
	venueRepo.venues["v1"] = &entities.Venue{ID: "v1"}
	mux := newProfileTestMux(newStubProfileRepo(), venueRepo, nil)

	payload := `{"attribute_scores":{"work":0.8,"date":0.3},"evidence_snippets":{"work":["quiet, has wifi"]}}`
	req := httptest.NewRequest(http.MethodPut, "/api/venues/v1/profile", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "v1", body["venue_id"])
	assert.NotEmpty(t, body["profiled_at"])
}

func TestPutProfileValidation(t *testing.T) {
	venueRepo := newStubVenueRepo()
	venueRepo.venues["v1"] = &entities.Venue{ID: "v1"}
	mux := newProfileTestMux(newStubProfileRepo(), venueRepo, nil)

	cases := map[string]string{
		"score above one": `{"attribute_scores":{"work":1.5}}`,
		"empty scores":    `{"attribute_scores":{}}`,
		"missing scores":  `{}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/venues/v1/profile", strings.NewReader(payload))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPutProfileUnknownVenue(t *testing.T) {
	mux := newProfileTestMux(newStubProfileRepo(), newStubVenueRepo(), nil)

	payload := `{"attribute_scores":{"work":0.5}}`
	req := httptest.NewRequest(http.MethodPut, "/api/venues/missing/profile", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnrichProfile(t *testing.T) {
	venueRepo := newStubVenueRepo()
	venueRepo.venues["v1"] = &entities.Venue{ID: "v1", Name: "Blue Bottle Coffee"}
	enricher := &stubEnricher{enrichment: &providers.ProfileEnrichment{
		AttributeScores:  map[string]float64{"work": 0.9},
		EvidenceSnippets: map[string][]string{"work": {"quiet cafe with wifi"}},
	}}
	mux := newProfileTestMux(newStubProfileRepo(), venueRepo, enricher)

	req := httptest.NewRequest(http.MethodPost, "/api/venues/v1/profile/enrich", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AttributeScores map[string]float64 `json:"attribute_scores"`
		ExpiresAt       *string            `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0.9, body.AttributeScores["work"])
	assert.NotNil(t, body.ExpiresAt)
}

func TestEnrichProfileUpstreamFailure(t *testing.T) {
	venueRepo := newStubVenueRepo()
	venueRepo.venues["v1"] = &entities.Venue{ID: "v1"}
	enricher := &stubEnricher{err: errors.New("openai request failed with status 500")}
	mux := newProfileTestMux(newStubProfileRepo(), venueRepo, enricher)

	req := httptest.NewRequest(http.MethodPost, "/api/venues/v1/profile/enrich", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
