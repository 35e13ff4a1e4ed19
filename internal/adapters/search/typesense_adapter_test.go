package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

func TestVenueDocument(t *testing.T) {
	rating := 4.4
	price := 2
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	venue := &entities.Venue{
		ID:           "v1",
		ProviderName: "google",
		Name:         "Blue Bottle Coffee",
		Categories:   []string{"Cafe", "Coffee Shop"},
		Lat:          37.7763,
		Lng:          -122.4233,
		Rating:       &rating,
		PriceLevel:   &price,
		CreatedAt:    created,
	}

	doc, err := venueDocument(venue)
	require.NoError(t, err)

	assert.Equal(t, "v1", doc["id"])
	assert.Equal(t, []float64{37.7763, -122.4233}, doc["location"])
	assert.Equal(t, []string{"Cafe", "Coffee Shop"}, doc["categories"])
	assert.Equal(t, 4.4, doc["rating"])
	assert.Equal(t, 2, doc["price_level"])
	assert.Equal(t, created.Unix(), doc["created_at"])
}

func TestVenueDocumentOptionalFieldsOmitted(t *testing.T) {
	venue := &entities.Venue{ID: "v2", Name: "Nameless Noodles"}

	doc, err := venueDocument(venue)
	require.NoError(t, err)

	assert.NotContains(t, doc, "rating")
	assert.NotContains(t, doc, "price_level")
	assert.Equal(t, []string{}, doc["categories"])
}

func TestVenueDocumentNil(t *testing.T) {
	_, err := venueDocument(nil)
	assert.Error(t, err)
}

func TestVenueFromDocument(t *testing.T) {
	doc := map[string]interface{}{
		"id":            "v1",
		"name":          "Blue Bottle Coffee",
		"provider_name": "google",
		"location":      []interface{}{37.7763, -122.4233},
		"categories":    []interface{}{"Cafe", "Coffee Shop"},
		"rating":        4.4,
		"price_level":   2.0,
	}

	venue := venueFromDocument(doc)
	require.NotNil(t, venue)

	assert.Equal(t, "Blue Bottle Coffee", venue.Name)
	assert.Equal(t, 37.7763, venue.Lat)
	assert.Equal(t, []string{"Cafe", "Coffee Shop"}, venue.Categories)
	require.NotNil(t, venue.PriceLevel)
	assert.Equal(t, 2, *venue.PriceLevel)
}

func TestVenueFromDocumentMissingID(t *testing.T) {
	assert.Nil(t, venueFromDocument(map[string]interface{}{"name": "no id"}))
}
