package handlers

import (
	"context"
	"time"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/providers"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

// Shared in-memory stubs backing the handler tests.

type stubVenueRepo struct {
	venues map[string]*entities.Venue
}

func newStubVenueRepo() *stubVenueRepo {
	return &stubVenueRepo{venues: map[string]*entities.Venue{}}
}

func (s *stubVenueRepo) Create(ctx context.Context, venue *entities.Venue) error { return nil }

func (s *stubVenueRepo) GetByID(ctx context.Context, id string) (*entities.Venue, error) {
	if v, ok := s.venues[id]; ok {
		return v, nil
	}
	return nil, apperrors.NewNotFoundError("venue not found")
}

func (s *stubVenueRepo) GetByProviderID(ctx context.Context, providerID string) (*entities.Venue, error) {
	return nil, apperrors.NewNotFoundError("venue not found")
}

func (s *stubVenueRepo) Update(ctx context.Context, venue *entities.Venue) error {
	s.venues[venue.ID] = venue
	return nil
}

func (s *stubVenueRepo) List(ctx context.Context, filter repositories.VenueFilter) ([]*entities.Venue, error) {
	venues := []*entities.Venue{}
	for _, v := range s.venues {
		venues = append(venues, v)
	}
	return venues, nil
}

func (s *stubVenueRepo) UpsertFromCreate(ctx context.Context, record *entities.VenueCreate) (*entities.Venue, bool, error) {
	venue := &entities.Venue{
		ID:           "id-" + record.ProviderID,
		ProviderID:   record.ProviderID,
		ProviderName: record.ProviderName,
		Name:         record.Name,
		Lat:          record.Lat,
		Lng:          record.Lng,
		LastSeenAt:   time.Now().UTC(),
	}
	_, existed := s.venues[venue.ID]
	s.venues[venue.ID] = venue
	return venue, !existed, nil
}

type stubSearchRepo struct {
	results []*entities.Venue
}

func (s *stubSearchRepo) Index(ctx context.Context, venue *entities.Venue) error { return nil }

func (s *stubSearchRepo) Search(ctx context.Context, query repositories.VenueSearchQuery) ([]*entities.Venue, error) {
	return s.results, nil
}

func (s *stubSearchRepo) Remove(ctx context.Context, venueID string) error { return nil }

type stubPlaceProvider struct {
	records []*entities.VenueCreate
	err     error
}

func (s *stubPlaceProvider) SearchNearby(ctx context.Context, query providers.NearbySearchQuery) ([]*entities.VenueCreate, error) {
	return s.records, s.err
}

type stubProfileRepo struct {
	profiles map[string]*entities.VenueProfile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: map[string]*entities.VenueProfile{}}
}

func (s *stubProfileRepo) Upsert(ctx context.Context, profile *entities.VenueProfile) error {
	s.profiles[profile.VenueID] = profile
	return nil
}

func (s *stubProfileRepo) GetByVenueID(ctx context.Context, venueID string) (*entities.VenueProfile, error) {
	if p, ok := s.profiles[venueID]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFoundError("profile not found")
}

func (s *stubProfileRepo) DeleteByVenueID(ctx context.Context, venueID string) error {
	delete(s.profiles, venueID)
	return nil
}

type stubEnricher struct {
	enrichment *providers.ProfileEnrichment
	err        error
}

func (s *stubEnricher) EnrichVenue(ctx context.Context, venue *entities.Venue) (*providers.ProfileEnrichment, error) {
	return s.enrichment, s.err
}

type stubEventRepo struct {
	created []*entities.UserEvent
}

func (s *stubEventRepo) Create(ctx context.Context, event *entities.UserEvent) error {
	s.created = append(s.created, event)
	return nil
}

func (s *stubEventRepo) List(ctx context.Context, filter repositories.UserEventFilter) ([]*entities.UserEvent, error) {
	return s.created, nil
}
