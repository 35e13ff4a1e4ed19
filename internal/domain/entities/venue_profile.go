package entities

import "time"

// VenueProfile holds enriched per-attribute scores and supporting evidence
// for a venue. At most one profile exists per venue.
type VenueProfile struct {
	ID               string              `json:"id" db:"id"`
	VenueID          string              `json:"venue_id" db:"venue_id"`
	AttributeScores  map[string]float64  `json:"attribute_scores" db:"-"`
	EvidenceSnippets map[string][]string `json:"evidence_snippets" db:"-"`
	EmbeddingRef     *string             `json:"embedding_ref,omitempty" db:"embedding_ref"`
	ProfiledAt       time.Time           `json:"profiled_at" db:"profiled_at"`
	ExpiresAt        *time.Time          `json:"expires_at,omitempty" db:"expires_at"`
}

// Expired reports whether the profile has passed its expiry timestamp.
func (p *VenueProfile) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}
