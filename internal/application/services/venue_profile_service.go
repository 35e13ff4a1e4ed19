package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/providers"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

const (
	defaultProfileTTL  = 30 * 24 * time.Hour
	maxEvidencePerAttr = 3
)

// VenueProfileService handles business logic for venue enrichment profiles
type VenueProfileService struct {
	repo       repositories.VenueProfileRepository
	venueRepo  repositories.VenueRepository
	enricher   providers.ProfileEnrichmentProvider
	eventBus   providers.EventBus
	profileTTL time.Duration
}

// NewVenueProfileService creates a new profile service. enricher and eventBus
// are optional.
func NewVenueProfileService(
	repo repositories.VenueProfileRepository,
	venueRepo repositories.VenueRepository,
	enricher providers.ProfileEnrichmentProvider,
	eventBus providers.EventBus,
) *VenueProfileService {
	return &VenueProfileService{
		repo:       repo,
		venueRepo:  venueRepo,
		enricher:   enricher,
		eventBus:   eventBus,
		profileTTL: defaultProfileTTL,
	}
}

// GetByVenueID retrieves the profile for a venue
func (s *VenueProfileService) GetByVenueID(ctx context.Context, venueID string) (*entities.VenueProfile, error) {
	return s.repo.GetByVenueID(ctx, venueID)
}

// Upsert stores a profile for a venue, replacing any existing one. The venue
// must exist.
func (s *VenueProfileService) Upsert(ctx context.Context, profile *entities.VenueProfile) (*entities.VenueProfile, error) {
	if _, err := s.venueRepo.GetByID(ctx, profile.VenueID); err != nil {
		return nil, err
	}

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.ProfiledAt.IsZero() {
		profile.ProfiledAt = time.Now().UTC()
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// Enrich derives a fresh profile for a venue from the enrichment provider.
// Scores are clamped to [0,1] and evidence is capped per attribute before the
// profile is stored with a TTL-based expiry.
func (s *VenueProfileService) Enrich(ctx context.Context, venueID string) (*entities.VenueProfile, error) {
	if s.enricher == nil {
		return nil, apperrors.NewInternalError("profile enrichment not configured", nil)
	}

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	enrichment, err := s.enricher.EnrichVenue(ctx, venue)
	if err != nil {
		return nil, apperrors.NewExternalError("profile enrichment failed", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.profileTTL)

	profile := &entities.VenueProfile{
		ID:               uuid.New().String(),
		VenueID:          venue.ID,
		AttributeScores:  clampScores(enrichment.AttributeScores),
		EvidenceSnippets: capEvidence(enrichment.EvidenceSnippets),
		EmbeddingRef:     enrichment.EmbeddingRef,
		ProfiledAt:       now,
		ExpiresAt:        &expiresAt,
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		event := entities.NewVenueEvent(entities.VenueEventProfiled, venue.ID, venue.ProviderName)
		if err := s.eventBus.Publish(ctx, VenueEventsChannel, event); err != nil {
			log.Printf("Warning: failed to publish profiled event for venue %s: %v", venue.ID, err)
		}
	}

	return profile, nil
}

func clampScores(scores map[string]float64) map[string]float64 {
	clamped := make(map[string]float64, len(scores))
	for attr, score := range scores {
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		clamped[attr] = score
	}
	return clamped
}

func capEvidence(evidence map[string][]string) map[string][]string {
	capped := make(map[string][]string, len(evidence))
	for attr, snippets := range evidence {
		if len(snippets) > maxEvidencePerAttr {
			snippets = snippets[:maxEvidencePerAttr]
		}
		capped[attr] = snippets
	}
	return capped
}
