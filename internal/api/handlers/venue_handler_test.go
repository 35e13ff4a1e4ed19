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
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
)

func newVenueTestMux(repo *stubVenueRepo, search *stubSearchRepo) *http.ServeMux {
	var searchRepo repositories.VenueSearchRepository
	if search != nil {
		searchRepo = search
	}
	handler := NewVenueHandler(services.NewVenueService(repo, searchRepo))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/venues", handler.ListVenues)
	mux.HandleFunc("POST /api/venues", handler.CreateVenue)
	mux.HandleFunc("GET /api/venues/search", handler.SearchVenues)
	mux.HandleFunc("GET /api/venues/{id}", handler.GetVenue)
	mux.HandleFunc("PATCH /api/venues/{id}", handler.UpdateVenue)
	return mux
}

func TestCreateVenue(t *testing.T) {
	repo := newStubVenueRepo()
	mux := newVenueTestMux(repo, nil)

	payload := `{"provider_id":"g1","provider_name":"google","name":"Blue Bottle Coffee","lat":37.7763,"lng":-122.4233}`
	req := httptest.NewRequest(http.MethodPost, "/api/venues", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Blue Bottle Coffee", body["name"])

	// Re-posting the same provider record updates in place instead of creating.
	req = httptest.NewRequest(http.MethodPost, "/api/venues", strings.NewReader(payload))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateVenueRejectsBadPayloads(t *testing.T) {
	mux := newVenueTestMux(newStubVenueRepo(), nil)

	cases := map[string]string{
		"missing provider id": `{"provider_name":"google","name":"No Provider","lat":1,"lng":1}`,
		"missing coordinates": `{"provider_id":"g1","provider_name":"google","name":"No Location"}`,
		"rating out of range": `{"provider_id":"g1","provider_name":"google","name":"Bad Rating","lat":1,"lng":1,"rating":6}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/venues", strings.NewReader(payload))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetVenue(t *testing.T) {
	repo := newStubVenueRepo()
	repo.venues["v1"] = &entities.Venue{ID: "v1", Name: "Blue Bottle Coffee"}
	mux := newVenueTestMux(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/venues/v1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Blue Bottle Coffee", body["name"])
}

func TestGetVenueNotFound(t *testing.T) {
	mux := newVenueTestMux(newStubVenueRepo(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/venues/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateVenuePartial(t *testing.T) {
	repo := newStubVenueRepo()
	address := "66 Mint St"
	repo.venues["v1"] = &entities.Venue{ID: "v1", Name: "Blue Bottle Coffee", Address: &address}
	mux := newVenueTestMux(repo, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/venues/v1", strings.NewReader(`{"name":"Blue Bottle Mint St"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Blue Bottle Mint St", body["name"])
	assert.Equal(t, "66 Mint St", body["address"], "omitted fields must stay untouched")
}

func TestUpdateVenueRejectsBadPayloads(t *testing.T) {
	repo := newStubVenueRepo()
	repo.venues["v1"] = &entities.Venue{ID: "v1", Name: "Blue Bottle Coffee"}
	mux := newVenueTestMux(repo, nil)

	cases := map[string]string{
		"malformed JSON":      `{"name":`,
		"empty name":          `{"name":""}`,
		"rating out of range": `{"rating":9}`,
		"price out of range":  `{"price_level":5}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/venues/v1", strings.NewReader(payload))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSearchVenues(t *testing.T) {
	search := &stubSearchRepo{results: []*entities.Venue{
		{ID: "v1", Name: "Blue Bottle Coffee"},
		{ID: "v2", Name: "Tartine Bakery"},
	}}
	mux := newVenueTestMux(newStubVenueRepo(), search)

	req := httptest.NewRequest(http.MethodGet, "/api/venues/search?q=coffee&lat=37.77&lng=-122.42&radius_km=2", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
}
