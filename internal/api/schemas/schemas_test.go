package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestVenueCreateValidation(t *testing.T) {
	valid := VenueCreate{
		ProviderID:   "google-1",
		ProviderName: "google",
		Name:         "Blue Bottle Coffee",
		Lat:          floatPtr(37.7763),
		Lng:          floatPtr(-122.4233),
	}
	assert.NoError(t, Validate(valid))

	missingName := valid
	missingName.Name = ""
	err := Validate(missingName)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	badRating := valid
	badRating.Rating = floatPtr(5.5)
	assert.True(t, apperrors.IsType(Validate(badRating), apperrors.ErrorTypeValidation))

	badPrice := valid
	badPrice.PriceLevel = intPtr(5)
	assert.True(t, apperrors.IsType(Validate(badPrice), apperrors.ErrorTypeValidation))

	badLat := valid
	badLat.Lat = floatPtr(91)
	assert.True(t, apperrors.IsType(Validate(badLat), apperrors.ErrorTypeValidation))
}

func TestVenueCreateZeroCoordinateIsValid(t *testing.T) {
	// The equator crosses real venues; 0 must satisfy "required" on a pointer.
	payload := VenueCreate{
		ProviderID:   "google-1",
		ProviderName: "google",
		Name:         "Equator Cafe",
		Lat:          floatPtr(0),
		Lng:          floatPtr(0),
	}
	assert.NoError(t, Validate(payload))
}

func TestVenueUpdatePartialSemantics(t *testing.T) {
	address := "66 Mint St"
	rating := 4.4
	venue := &entities.Venue{
		Name:    "Blue Bottle Coffee",
		Address: &address,
		Rating:  &rating,
	}

	payload := VenueUpdate{Name: strPtr("Blue Bottle Mint St")}
	require.NoError(t, Validate(payload))
	payload.ToEntity().Apply(venue)

	assert.Equal(t, "Blue Bottle Mint St", venue.Name)
	assert.Equal(t, &address, venue.Address, "omitted fields stay untouched")
	assert.Equal(t, &rating, venue.Rating)
}

func TestVenueUpdateValidation(t *testing.T) {
	assert.NoError(t, Validate(VenueUpdate{}))
	assert.Error(t, Validate(VenueUpdate{Name: strPtr("")}))
	assert.Error(t, Validate(VenueUpdate{Rating: floatPtr(-1)}))
	assert.Error(t, Validate(VenueUpdate{PriceLevel: intPtr(9)}))
}

func TestVenueHoursPeriodsPassThrough(t *testing.T) {
	periods := json.RawMessage(`[{"open":{"day":1,"hour":8}}]`)
	payload := VenueUpdate{Hours: &VenueHours{
		WeekdayText: []string{"Monday: 8:00 AM - 6:00 PM"},
		OpenNow:     true,
		Periods:     periods,
	}}

	update := payload.ToEntity()
	require.NotNil(t, update.Hours)
	assert.Equal(t, periods, update.Hours.Periods)

	create := VenueCreate{
		ProviderID:   "g1",
		ProviderName: "google",
		Name:         "Blue Bottle Coffee",
		Lat:          floatPtr(37.7763),
		Lng:          floatPtr(-122.4233),
		Hours:        payload.Hours,
	}
	record := create.ToEntity()
	require.NotNil(t, record.Hours)
	assert.Equal(t, periods, record.Hours.Periods)
}

func TestUserEventCreateValidation(t *testing.T) {
	valid := UserEventCreate{
		UserID:    strPtr("u1"),
		EventType: "click",
		VenueID:   strPtr("v1"),
		Mode:      strPtr("date"),
	}
	assert.NoError(t, Validate(valid))

	badType := valid
	badType.EventType = "hover"
	assert.True(t, apperrors.IsType(Validate(badType), apperrors.ErrorTypeValidation))

	badMode := valid
	badMode.Mode = strPtr("brunch")
	assert.True(t, apperrors.IsType(Validate(badMode), apperrors.ErrorTypeValidation))
}

func TestUserEventCreateToEntity(t *testing.T) {
	payload := UserEventCreate{
		EventType:    "save",
		Mode:         strPtr("quick_bite"),
		QueryContext: map[string]interface{}{"radius_m": 1500.0},
	}

	event := payload.ToEntity()
	assert.Equal(t, entities.EventTypeSave, event.EventType)
	require.NotNil(t, event.Mode)
	assert.Equal(t, entities.ModeQuickBite, *event.Mode)
	assert.Equal(t, 1500.0, event.QueryContext["radius_m"])
}

func TestVenueProfileCreateValidation(t *testing.T) {
	valid := VenueProfileCreate{
		AttributeScores: map[string]float64{"work": 0.8, "date": 0.3},
	}
	assert.NoError(t, Validate(valid))

	outOfRange := VenueProfileCreate{
		AttributeScores: map[string]float64{"work": 1.2},
	}
	assert.True(t, apperrors.IsType(Validate(outOfRange), apperrors.ErrorTypeValidation))

	empty := VenueProfileCreate{AttributeScores: map[string]float64{}}
	assert.Error(t, Validate(empty))
}

func TestDiscoverRequestToQuery(t *testing.T) {
	payload := DiscoverRequest{
		Lat: floatPtr(37.7763),
		Lng: floatPtr(-122.4233),
	}
	require.NoError(t, Validate(payload))

	query := payload.ToQuery()
	assert.Equal(t, 37.7763, query.Lat)
	assert.Equal(t, defaultDiscoverRadiusM, query.RadiusM)

	payload.RadiusM = 800
	assert.Equal(t, 800, payload.ToQuery().RadiusM)
}

func TestDiscoverRequestRequiresCoordinates(t *testing.T) {
	assert.Error(t, Validate(DiscoverRequest{}))
	assert.Error(t, Validate(DiscoverRequest{Lat: floatPtr(37.0)}))
}

func TestVenueFromEntityNilCategories(t *testing.T) {
	response := VenueFromEntity(&entities.Venue{ID: "v1"})
	assert.NotNil(t, response.Categories)
	assert.Empty(t, response.Categories)

	assert.Nil(t, VenueFromEntity(nil))
}
