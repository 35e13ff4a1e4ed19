package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/clients/postgres"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

// VenueProfileAdapter implements enrichment profile persistence in Postgres.
type VenueProfileAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewVenueProfileAdapter creates a new venue profile adapter.
func NewVenueProfileAdapter(client *postgres.Client) repositories.VenueProfileRepository {
	return &VenueProfileAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Upsert creates or replaces the single profile for a venue.
func (a *VenueProfileAdapter) Upsert(ctx context.Context, profile *entities.VenueProfile) error {
	if profile == nil {
		return apperrors.NewInternalError("venue profile is nil", errors.New("profile is nil"))
	}
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.ProfiledAt.IsZero() {
		profile.ProfiledAt = time.Now().UTC()
	}

	scores, err := json.Marshal(orEmptyScores(profile.AttributeScores))
	if err != nil {
		return apperrors.NewInternalError("failed to encode attribute scores", err)
	}
	evidence, err := json.Marshal(orEmptyEvidence(profile.EvidenceSnippets))
	if err != nil {
		return apperrors.NewInternalError("failed to encode evidence snippets", err)
	}

	record := goqu.Record{
		"id":                profile.ID,
		"venue_id":          profile.VenueID,
		"attribute_scores":  scores,
		"evidence_snippets": evidence,
		"embedding_ref":     nullString(profile.EmbeddingRef),
		"profiled_at":       profile.ProfiledAt,
		"expires_at":        nullTime(profile.ExpiresAt),
	}

	update := goqu.Record{}
	for _, col := range []string{"attribute_scores", "evidence_snippets", "embedding_ref", "profiled_at", "expires_at"} {
		update[col] = record[col]
	}

	query, args, err := a.db.Insert("venue_profiles").
		Rows(record).
		OnConflict(goqu.DoUpdate("venue_id", update)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build profile upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert venue profile", err)
	}

	return nil
}

// GetByVenueID retrieves the profile attached to a venue.
func (a *VenueProfileAdapter) GetByVenueID(ctx context.Context, venueID string) (*entities.VenueProfile, error) {
	query, args, err := a.db.From("venue_profiles").
		Select("id", "venue_id", "attribute_scores", "evidence_snippets", "embedding_ref", "profiled_at", "expires_at").
		Where(goqu.Ex{"venue_id": venueID}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build profile select query", err)
	}

	var (
		profile      entities.VenueProfile
		scoresJSON   []byte
		evidenceJSON []byte
		embeddingRef sql.NullString
		expiresAt    sql.NullTime
	)

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.VenueID,
		&scoresJSON,
		&evidenceJSON,
		&embeddingRef,
		&profile.ProfiledAt,
		&expiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no profile for venue %s", venueID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get venue profile", err)
	}

	if err := json.Unmarshal(scoresJSON, &profile.AttributeScores); err != nil {
		return nil, apperrors.NewInternalError("failed to decode attribute scores", err)
	}
	if err := json.Unmarshal(evidenceJSON, &profile.EvidenceSnippets); err != nil {
		return nil, apperrors.NewInternalError("failed to decode evidence snippets", err)
	}
	if embeddingRef.Valid {
		profile.EmbeddingRef = &embeddingRef.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		profile.ExpiresAt = &t
	}

	return &profile, nil
}

// DeleteByVenueID removes the profile attached to a venue.
func (a *VenueProfileAdapter) DeleteByVenueID(ctx context.Context, venueID string) error {
	query, args, err := a.db.Delete("venue_profiles").Where(goqu.Ex{"venue_id": venueID}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build profile delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete venue profile", err)
	}
	return nil
}

func orEmptyScores(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

func orEmptyEvidence(m map[string][]string) map[string][]string {
	if m == nil {
		return map[string][]string{}
	}
	return m
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
