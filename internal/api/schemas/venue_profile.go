package schemas

import (
	"time"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

// VenueProfileCreate is an inbound profile upsert payload.
type VenueProfileCreate struct {
	AttributeScores  map[string]float64  `json:"attribute_scores" validate:"required,min=1,dive,gte=0,lte=1"`
	EvidenceSnippets map[string][]string `json:"evidence_snippets,omitempty"`
	EmbeddingRef     *string             `json:"embedding_ref,omitempty" validate:"omitempty,max=255"`
	ExpiresAt        *time.Time          `json:"expires_at,omitempty"`
}

// ToEntity converts the payload into a domain profile for the given venue.
func (s *VenueProfileCreate) ToEntity(venueID string) *entities.VenueProfile {
	return &entities.VenueProfile{
		VenueID:          venueID,
		AttributeScores:  s.AttributeScores,
		EvidenceSnippets: s.EvidenceSnippets,
		EmbeddingRef:     s.EmbeddingRef,
		ExpiresAt:        s.ExpiresAt,
	}
}

// VenueProfileResponse is the outbound profile representation.
type VenueProfileResponse struct {
	ID               string              `json:"id"`
	VenueID          string              `json:"venue_id"`
	AttributeScores  map[string]float64  `json:"attribute_scores"`
	EvidenceSnippets map[string][]string `json:"evidence_snippets"`
	EmbeddingRef     *string             `json:"embedding_ref,omitempty"`
	ProfiledAt       time.Time           `json:"profiled_at"`
	ExpiresAt        *time.Time          `json:"expires_at,omitempty"`
	Expired          bool                `json:"expired"`
}

// VenueProfileFromEntity projects a profile onto the wire representation.
func VenueProfileFromEntity(profile *entities.VenueProfile) *VenueProfileResponse {
	if profile == nil {
		return nil
	}

	scores := profile.AttributeScores
	if scores == nil {
		scores = map[string]float64{}
	}
	evidence := profile.EvidenceSnippets
	if evidence == nil {
		evidence = map[string][]string{}
	}

	return &VenueProfileResponse{
		ID:               profile.ID,
		VenueID:          profile.VenueID,
		AttributeScores:  scores,
		EvidenceSnippets: evidence,
		EmbeddingRef:     profile.EmbeddingRef,
		ProfiledAt:       profile.ProfiledAt,
		ExpiresAt:        profile.ExpiresAt,
		Expired:          profile.Expired(time.Now().UTC()),
	}
}
