package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventType_IsValid(t *testing.T) {
	valid := []EventType{
		EventTypeImpression,
		EventTypeClick,
		EventTypeSave,
		EventTypeThumbsUp,
		EventTypeThumbsDown,
		EventTypeNavigate,
	}
	for _, et := range valid {
		assert.True(t, et.IsValid(), "expected %q to be valid", et)
	}

	assert.False(t, EventType("rating").IsValid())
	assert.False(t, EventType("").IsValid())
}

func TestMode_IsValid(t *testing.T) {
	for _, m := range []Mode{ModeWork, ModeDate, ModeQuickBite, ModeBudget} {
		assert.True(t, m.IsValid(), "expected %q to be valid", m)
	}

	assert.False(t, Mode("brunch").IsValid())
}

func TestVenueProfile_Expired(t *testing.T) {
	now := time.Now()

	profile := &VenueProfile{}
	assert.False(t, profile.Expired(now), "profile without expiry never expires")

	past := now.Add(-time.Hour)
	profile.ExpiresAt = &past
	assert.True(t, profile.Expired(now))

	future := now.Add(time.Hour)
	profile.ExpiresAt = &future
	assert.False(t, profile.Expired(now))
}

func TestVenueUpdate_Apply(t *testing.T) {
	addr := "1 Ferry Building, San Francisco"
	rating := 4.5
	venue := &Venue{
		Name:    "Blue Bottle Coffee",
		Lat:     37.7749,
		Lng:     -122.4194,
		Address: &addr,
	}

	name := "Blue Bottle"
	update := &VenueUpdate{
		Name:   &name,
		Rating: &rating,
	}
	update.Apply(venue)

	assert.Equal(t, "Blue Bottle", venue.Name)
	assert.Equal(t, 4.5, *venue.Rating)
	// Omitted fields stay untouched.
	assert.Equal(t, 37.7749, venue.Lat)
	assert.Equal(t, &addr, venue.Address)
}
