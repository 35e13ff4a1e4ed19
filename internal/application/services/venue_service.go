package services

import (
	"context"
	"log"
	"time"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

// VenueService handles business logic for venues
type VenueService struct {
	repo       repositories.VenueRepository
	searchRepo repositories.VenueSearchRepository
}

// NewVenueService creates a new venue service. searchRepo is optional.
func NewVenueService(repo repositories.VenueRepository, searchRepo repositories.VenueSearchRepository) *VenueService {
	return &VenueService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// Create registers a venue directly, outside of a discovery run. The upsert
// is keyed on the provider ID, so re-posting the same record updates it in
// place. Returns whether a new venue was created.
func (s *VenueService) Create(ctx context.Context, record *entities.VenueCreate) (*entities.Venue, bool, error) {
	venue, created, err := s.repo.UpsertFromCreate(ctx, record)
	if err != nil {
		return nil, false, err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, venue); err != nil {
			log.Printf("Warning: failed to index venue %s: %v", venue.ID, err)
		}
	}

	return venue, created, nil
}

// GetByID retrieves a venue by ID
func (s *VenueService) GetByID(ctx context.Context, id string) (*entities.Venue, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves venues matching the filter
func (s *VenueService) List(ctx context.Context, filter repositories.VenueFilter) ([]*entities.Venue, error) {
	return s.repo.List(ctx, filter)
}

// Update applies a partial update to a venue and refreshes the search index.
// Fields the update leaves nil keep their stored values.
func (s *VenueService) Update(ctx context.Context, id string, update *entities.VenueUpdate) (*entities.Venue, error) {
	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(venue)
	venue.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, venue); err != nil {
		return nil, err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, venue); err != nil {
			log.Printf("Warning: failed to update venue index %s: %v", venue.ID, err)
		}
	}

	return venue, nil
}

// Search searches venues through the search index
func (s *VenueService) Search(ctx context.Context, query repositories.VenueSearchQuery) ([]*entities.Venue, error) {
	if s.searchRepo == nil {
		return nil, apperrors.NewInternalError("search index not configured", nil)
	}
	return s.searchRepo.Search(ctx, query)
}
