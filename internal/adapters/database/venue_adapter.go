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
	"github.com/lib/pq"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/clients/postgres"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

const uniqueViolation = "23505"

var venueColumns = []interface{}{
	"id", "provider_id", "provider_name", "name", "categories",
	"lat", "lng", "address", "rating", "price_level",
	"hours", "raw_hours", "last_seen_at", "created_at", "updated_at",
}

// VenueAdapter implements the VenueRepository interface in Postgres.
type VenueAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewVenueAdapter creates a new venue adapter
func NewVenueAdapter(client *postgres.Client) repositories.VenueRepository {
	return &VenueAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new venue
func (a *VenueAdapter) Create(ctx context.Context, venue *entities.Venue) error {
	record, err := venueRecord(venue)
	if err != nil {
		return err
	}

	query, args, err := a.db.Insert("venues").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build venue insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return apperrors.NewConflictError(fmt.Sprintf("venue with provider id %s already exists", venue.ProviderID))
		}
		return apperrors.NewInternalError("failed to create venue", err)
	}

	return nil
}

// GetByID retrieves a venue by its internal id
func (a *VenueAdapter) GetByID(ctx context.Context, id string) (*entities.Venue, error) {
	return a.getOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("venue with id %s not found", id))
}

// GetByProviderID retrieves a venue by its provider-scoped identity
func (a *VenueAdapter) GetByProviderID(ctx context.Context, providerID string) (*entities.Venue, error) {
	return a.getOne(ctx, goqu.Ex{"provider_id": providerID}, fmt.Sprintf("venue with provider id %s not found", providerID))
}

func (a *VenueAdapter) getOne(ctx context.Context, where goqu.Ex, notFound string) (*entities.Venue, error) {
	query, args, err := a.db.From("venues").Select(venueColumns...).Where(where).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build venue select query", err)
	}

	venue, err := scanVenue(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get venue", err)
	}
	return venue, nil
}

// Update rewrites a venue's mutable fields and bumps updated_at
func (a *VenueAdapter) Update(ctx context.Context, venue *entities.Venue) error {
	venue.UpdatedAt = time.Now().UTC()

	record, err := venueRecord(venue)
	if err != nil {
		return err
	}
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("venues").Set(record).Where(goqu.Ex{"id": venue.ID}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build venue update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update venue", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("venue with id %s not found", venue.ID))
	}

	return nil
}

// List returns venues matching the filter, most recently created first
func (a *VenueAdapter) List(ctx context.Context, filter repositories.VenueFilter) ([]*entities.Venue, error) {
	ds := a.db.From("venues").Select(venueColumns...)

	if filter.ProviderName != "" {
		ds = ds.Where(goqu.Ex{"provider_name": filter.ProviderName})
	}
	if filter.MinRating != nil {
		ds = ds.Where(goqu.C("rating").Gte(*filter.MinRating))
	}
	if filter.MaxPrice != nil {
		ds = ds.Where(goqu.C("price_level").Lte(*filter.MaxPrice))
	}
	if filter.Category != "" {
		// categories is a JSONB array of strings
		ds = ds.Where(goqu.L("categories @> ?", fmt.Sprintf(`["%s"]`, filter.Category)))
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	ds = ds.Order(goqu.C("created_at").Desc()).Limit(uint(limit)).Offset(uint(filter.Offset))

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build venue list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list venues", err)
	}
	defer rows.Close()

	venues := []*entities.Venue{}
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan venue row", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate venue rows", err)
	}

	return venues, nil
}

// UpsertFromCreate inserts the record on first observation or refreshes the
// stored row (and bumps last_seen_at) on re-observation, keyed on provider_id.
func (a *VenueAdapter) UpsertFromCreate(ctx context.Context, record *entities.VenueCreate) (*entities.Venue, bool, error) {
	if record == nil {
		return nil, false, apperrors.NewInternalError("venue create record is nil", errors.New("record is nil"))
	}

	now := time.Now().UTC()
	venue := &entities.Venue{
		ID:           uuid.New().String(),
		ProviderID:   record.ProviderID,
		ProviderName: record.ProviderName,
		Name:         record.Name,
		Categories:   record.Categories,
		Lat:          record.Lat,
		Lng:          record.Lng,
		Address:      record.Address,
		Rating:       record.Rating,
		PriceLevel:   record.PriceLevel,
		Hours:        record.Hours,
		RawHours:     record.RawHours,
		LastSeenAt:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	row, err := venueRecord(venue)
	if err != nil {
		return nil, false, err
	}

	update := goqu.Record{}
	for _, col := range []string{"name", "categories", "lat", "lng", "address", "rating", "price_level", "hours", "raw_hours", "last_seen_at", "updated_at"} {
		update[col] = row[col]
	}

	query, args, err := a.db.Insert("venues").
		Rows(row).
		OnConflict(goqu.DoUpdate("provider_id", update)).
		Returning(venueColumnNames()...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, false, apperrors.NewInternalError("failed to build venue upsert query", err)
	}

	stored, err := scanVenue(a.client.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, false, apperrors.NewInternalError("failed to upsert venue", err)
	}

	// On first observation created_at and updated_at carry the same timestamp.
	created := stored.CreatedAt.Equal(stored.UpdatedAt)
	return stored, created, nil
}

func venueColumnNames() []interface{} {
	names := make([]interface{}, len(venueColumns))
	copy(names, venueColumns)
	return names
}

// venueRecord flattens a venue into a goqu insert/update record, encoding
// categories and hours as JSON.
func venueRecord(venue *entities.Venue) (goqu.Record, error) {
	if venue == nil {
		return nil, apperrors.NewInternalError("venue is nil", errors.New("venue is nil"))
	}

	categories := venue.Categories
	if categories == nil {
		categories = []string{}
	}
	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode venue categories", err)
	}

	var hoursJSON interface{}
	if venue.Hours != nil {
		encoded, err := json.Marshal(venue.Hours)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to encode venue hours", err)
		}
		hoursJSON = encoded
	}

	return goqu.Record{
		"id":            venue.ID,
		"provider_id":   venue.ProviderID,
		"provider_name": venue.ProviderName,
		"name":          venue.Name,
		"categories":    categoriesJSON,
		"lat":           venue.Lat,
		"lng":           venue.Lng,
		"address":       nullString(venue.Address),
		"rating":        nullFloat(venue.Rating),
		"price_level":   nullInt(venue.PriceLevel),
		"hours":         hoursJSON,
		"raw_hours":     nullString(venue.RawHours),
		"last_seen_at":  venue.LastSeenAt,
		"created_at":    venue.CreatedAt,
		"updated_at":    venue.UpdatedAt,
	}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*entities.Venue, error) {
	var (
		venue          entities.Venue
		categoriesJSON []byte
		hoursJSON      []byte
		address        sql.NullString
		rating         sql.NullFloat64
		priceLevel     sql.NullInt64
		rawHours       sql.NullString
	)

	err := row.Scan(
		&venue.ID,
		&venue.ProviderID,
		&venue.ProviderName,
		&venue.Name,
		&categoriesJSON,
		&venue.Lat,
		&venue.Lng,
		&address,
		&rating,
		&priceLevel,
		&hoursJSON,
		&rawHours,
		&venue.LastSeenAt,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(categoriesJSON) > 0 {
		if err := json.Unmarshal(categoriesJSON, &venue.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode venue categories: %w", err)
		}
	}
	if len(hoursJSON) > 0 {
		var hours entities.VenueHours
		if err := json.Unmarshal(hoursJSON, &hours); err != nil {
			return nil, fmt.Errorf("failed to decode venue hours: %w", err)
		}
		venue.Hours = &hours
	}
	if address.Valid {
		venue.Address = &address.String
	}
	if rating.Valid {
		venue.Rating = &rating.Float64
	}
	if priceLevel.Valid {
		level := int(priceLevel.Int64)
		venue.PriceLevel = &level
	}
	if rawHours.Valid {
		venue.RawHours = &rawHours.String
	}

	return &venue, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
