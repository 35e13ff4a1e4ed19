package providers

import (
	"context"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

// ProfileEnrichment is the raw enrichment output for a venue before the
// profile service clamps scores and caps evidence.
type ProfileEnrichment struct {
	AttributeScores  map[string]float64
	EvidenceSnippets map[string][]string
	EmbeddingRef     *string
}

// ProfileEnrichmentProvider derives per-attribute scores and evidence
// snippets for a venue from its descriptive data.
type ProfileEnrichmentProvider interface {
	EnrichVenue(ctx context.Context, venue *entities.Venue) (*ProfileEnrichment, error)
}
