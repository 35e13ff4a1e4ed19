package services

import (
	"context"
	"log"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/providers"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/observability"
)

// VenueEventsChannel is the event bus channel venue lifecycle events go out on.
const VenueEventsChannel = "venues"

// DiscoveryService runs provider-backed venue discovery and persists results.
type DiscoveryService struct {
	provider   providers.PlaceSearchProvider
	repo       repositories.VenueRepository
	searchRepo repositories.VenueSearchRepository
	eventBus   providers.EventBus
	metrics    *observability.Metrics
}

// NewDiscoveryService creates a new discovery service. searchRepo, eventBus
// and metrics are optional.
func NewDiscoveryService(
	provider providers.PlaceSearchProvider,
	repo repositories.VenueRepository,
	searchRepo repositories.VenueSearchRepository,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *DiscoveryService {
	return &DiscoveryService{
		provider:   provider,
		repo:       repo,
		searchRepo: searchRepo,
		eventBus:   eventBus,
		metrics:    metrics,
	}
}

// Discover searches the place provider around a point and upserts every
// returned record. The provider owns query validation. A record that fails to
// persist or index is logged and skipped; it never fails the batch. Returned
// venues keep provider order.
func (s *DiscoveryService) Discover(ctx context.Context, query providers.NearbySearchQuery) ([]*entities.Venue, error) {
	records, err := s.provider.SearchNearby(ctx, query)
	if err != nil {
		return nil, err
	}

	venues := make([]*entities.Venue, 0, len(records))
	for _, record := range records {
		venue, created, err := s.repo.UpsertFromCreate(ctx, record)
		if err != nil {
			log.Printf("Warning: failed to upsert venue %s/%s: %v", record.ProviderName, record.ProviderID, err)
			continue
		}

		if s.searchRepo != nil {
			if err := s.searchRepo.Index(ctx, venue); err != nil {
				// Eventual consistency: the database row exists, the index catches up later
				log.Printf("Warning: failed to index venue %s: %v", venue.ID, err)
			}
		}

		s.publishVenueEvent(ctx, venue, created)
		venues = append(venues, venue)
	}

	if s.metrics != nil && len(venues) > 0 {
		observability.RecordVenuesDiscovered(ctx, s.metrics, venues[0].ProviderName, len(venues))
	}

	return venues, nil
}

func (s *DiscoveryService) publishVenueEvent(ctx context.Context, venue *entities.Venue, created bool) {
	if s.eventBus == nil {
		return
	}

	kind := entities.VenueEventUpdated
	if created {
		kind = entities.VenueEventDiscovered
	}

	event := entities.NewVenueEvent(kind, venue.ID, venue.ProviderName)
	if err := s.eventBus.Publish(ctx, VenueEventsChannel, event); err != nil {
		log.Printf("Warning: failed to publish %s event for venue %s: %v", kind, venue.ID, err)
	}
}
