package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/providers"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

type stubPlaceProvider struct {
	records []*entities.VenueCreate
	err     error
}

func (s *stubPlaceProvider) SearchNearby(ctx context.Context, query providers.NearbySearchQuery) ([]*entities.VenueCreate, error) {
	return s.records, s.err
}

type stubVenueRepo struct {
	venues   map[string]*entities.Venue
	existing map[string]bool
	failOn   string
	upserts  []string
	updates  []*entities.Venue
}

func newStubVenueRepo() *stubVenueRepo {
	return &stubVenueRepo{
		venues:   map[string]*entities.Venue{},
		existing: map[string]bool{},
	}
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
	s.updates = append(s.updates, venue)
	s.venues[venue.ID] = venue
	return nil
}

func (s *stubVenueRepo) List(ctx context.Context, filter repositories.VenueFilter) ([]*entities.Venue, error) {
	return nil, nil
}

func (s *stubVenueRepo) UpsertFromCreate(ctx context.Context, record *entities.VenueCreate) (*entities.Venue, bool, error) {
	if record.ProviderID == s.failOn {
		return nil, false, apperrors.NewInternalError("boom", errors.New("boom"))
	}
	s.upserts = append(s.upserts, record.ProviderID)
	venue := &entities.Venue{
		ID:           "id-" + record.ProviderID,
		ProviderID:   record.ProviderID,
		ProviderName: record.ProviderName,
		Name:         record.Name,
		Lat:          record.Lat,
		Lng:          record.Lng,
		LastSeenAt:   time.Now().UTC(),
	}
	created := !s.existing[record.ProviderID]
	s.venues[venue.ID] = venue
	return venue, created, nil
}

type stubSearchRepo struct {
	indexed []string
	results []*entities.Venue
	err     error
}

func (s *stubSearchRepo) Index(ctx context.Context, venue *entities.Venue) error {
	if s.err != nil {
		return s.err
	}
	s.indexed = append(s.indexed, venue.ID)
	return nil
}

func (s *stubSearchRepo) Search(ctx context.Context, query repositories.VenueSearchQuery) ([]*entities.Venue, error) {
	return s.results, s.err
}

func (s *stubSearchRepo) Remove(ctx context.Context, venueID string) error { return nil }

type stubEventBus struct {
	published []*entities.VenueEvent
}

func (s *stubEventBus) Publish(ctx context.Context, channel string, event *entities.VenueEvent) error {
	s.published = append(s.published, event)
	return nil
}

func (s *stubEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.VenueEvent, error) {
	return nil, nil
}

func (s *stubEventBus) Close() error { return nil }

func discoveryRecords() []*entities.VenueCreate {
	return []*entities.VenueCreate{
		{ProviderID: "g1", ProviderName: "google", Name: "Blue Bottle Coffee", Lat: 37.77, Lng: -122.42},
		{ProviderID: "g2", ProviderName: "google", Name: "Tartine Bakery", Lat: 37.76, Lng: -122.42},
		{ProviderID: "g3", ProviderName: "google", Name: "Zuni Cafe", Lat: 37.77, Lng: -122.42},
	}
}

func TestDiscoveryService_UpsertsInProviderOrder(t *testing.T) {
	provider := &stubPlaceProvider{records: discoveryRecords()}
	repo := newStubVenueRepo()
	search := &stubSearchRepo{}
	bus := &stubEventBus{}

	service := NewDiscoveryService(provider, repo, search, bus, nil)
	venues, err := service.Discover(context.Background(), providers.NearbySearchQuery{Lat: 37.77, Lng: -122.42, RadiusM: 1500})
	require.NoError(t, err)

	require.Len(t, venues, 3)
	assert.Equal(t, []string{"g1", "g2", "g3"}, repo.upserts)
	assert.Equal(t, "Blue Bottle Coffee", venues[0].Name)
	assert.Len(t, search.indexed, 3)
}

func TestDiscoveryService_FailedRecordSkippedNotFatal(t *testing.T) {
	provider := &stubPlaceProvider{records: discoveryRecords()}
	repo := newStubVenueRepo()
	repo.failOn = "g2"

	service := NewDiscoveryService(provider, repo, nil, nil, nil)
	venues, err := service.Discover(context.Background(), providers.NearbySearchQuery{Lat: 37.77, Lng: -122.42, RadiusM: 1500})
	require.NoError(t, err)

	require.Len(t, venues, 2)
	assert.Equal(t, "g1", venues[0].ProviderID)
	assert.Equal(t, "g3", venues[1].ProviderID)
}

func TestDiscoveryService_IndexFailureDoesNotDropVenue(t *testing.T) {
	provider := &stubPlaceProvider{records: discoveryRecords()}
	repo := newStubVenueRepo()
	search := &stubSearchRepo{err: errors.New("typesense down")}

	service := NewDiscoveryService(provider, repo, search, nil, nil)
	venues, err := service.Discover(context.Background(), providers.NearbySearchQuery{Lat: 37.77, Lng: -122.42, RadiusM: 1500})
	require.NoError(t, err)
	assert.Len(t, venues, 3)
}

func TestDiscoveryService_ProviderErrorPropagates(t *testing.T) {
	provider := &stubPlaceProvider{err: apperrors.NewExternalError("status 500", errors.New("status 500"))}
	service := NewDiscoveryService(provider, newStubVenueRepo(), nil, nil, nil)

	_, err := service.Discover(context.Background(), providers.NearbySearchQuery{Lat: 37.77, Lng: -122.42, RadiusM: 1500})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestDiscoveryService_EventKinds(t *testing.T) {
	provider := &stubPlaceProvider{records: discoveryRecords()}
	repo := newStubVenueRepo()
	repo.existing["g2"] = true
	bus := &stubEventBus{}

	service := NewDiscoveryService(provider, repo, nil, bus, nil)
	_, err := service.Discover(context.Background(), providers.NearbySearchQuery{Lat: 37.77, Lng: -122.42, RadiusM: 1500})
	require.NoError(t, err)

	require.Len(t, bus.published, 3)
	assert.Equal(t, entities.VenueEventDiscovered, bus.published[0].Kind)
	assert.Equal(t, entities.VenueEventUpdated, bus.published[1].Kind)
	assert.Equal(t, entities.VenueEventDiscovered, bus.published[2].Kind)
}
