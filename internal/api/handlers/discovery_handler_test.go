package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timothy0727/ModeMap/internal/application/services"
	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

func newDiscoveryTestMux(provider *stubPlaceProvider, repo *stubVenueRepo) *http.ServeMux {
	service := services.NewDiscoveryService(provider, repo, nil, nil, nil)
	handler := NewDiscoveryHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/venues/discover", handler.DiscoverVenues)
	return mux
}

func TestDiscoverVenues(t *testing.T) {
	provider := &stubPlaceProvider{records: []*entities.VenueCreate{
		{ProviderID: "g1", ProviderName: "google", Name: "Blue Bottle Coffee", Lat: 37.77, Lng: -122.42},
		{ProviderID: "g2", ProviderName: "google", Name: "Tartine Bakery", Lat: 37.76, Lng: -122.42},
	}}
	mux := newDiscoveryTestMux(provider, newStubVenueRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/venues/discover",
		strings.NewReader(`{"lat":37.77,"lng":-122.42,"radius_m":1500}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count  int `json:"count"`
		Venues []struct {
			Name string `json:"name"`
		} `json:"venues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Blue Bottle Coffee", body.Venues[0].Name)
}

func TestDiscoverVenuesRequiresCoordinates(t *testing.T) {
	mux := newDiscoveryTestMux(&stubPlaceProvider{}, newStubVenueRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/venues/discover", strings.NewReader(`{"radius_m":1500}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDiscoverVenuesProviderValidation(t *testing.T) {
	provider := &stubPlaceProvider{err: apperrors.NewValidationError("radius must be in (0, 50000] meters")}
	mux := newDiscoveryTestMux(provider, newStubVenueRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/venues/discover",
		strings.NewReader(`{"lat":37.77,"lng":-122.42,"radius_m":60000}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDiscoverVenuesUpstreamFailure(t *testing.T) {
	provider := &stubPlaceProvider{err: apperrors.NewExternalError("places request failed with status 403", nil)}
	mux := newDiscoveryTestMux(provider, newStubVenueRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/venues/discover",
		strings.NewReader(`{"lat":37.77,"lng":-122.42}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDiscoverVenuesMissingCredential(t *testing.T) {
	provider := &stubPlaceProvider{err: apperrors.NewMissingCredentialError("places api key is not configured")}
	mux := newDiscoveryTestMux(provider, newStubVenueRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/venues/discover",
		strings.NewReader(`{"lat":37.77,"lng":-122.42}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
