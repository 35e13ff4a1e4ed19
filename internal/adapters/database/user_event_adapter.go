package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/clients/postgres"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

// UserEventAdapter implements the append-only user event log in Postgres.
type UserEventAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserEventAdapter creates a new user event adapter.
func NewUserEventAdapter(client *postgres.Client) repositories.UserEventRepository {
	return &UserEventAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends one interaction event. Events are never mutated or deleted.
func (a *UserEventAdapter) Create(ctx context.Context, event *entities.UserEvent) error {
	if event == nil {
		return apperrors.NewInternalError("user event is nil", errors.New("event is nil"))
	}

	var contextJSON interface{}
	if event.QueryContext != nil {
		encoded, err := json.Marshal(event.QueryContext)
		if err != nil {
			return apperrors.NewInternalError("failed to encode query context", err)
		}
		contextJSON = encoded
	}

	var mode sql.NullString
	if event.Mode != nil {
		mode = sql.NullString{String: string(*event.Mode), Valid: true}
	}

	record := goqu.Record{
		"id":            event.ID,
		"user_id":       nullString(event.UserID),
		"event_type":    string(event.EventType),
		"venue_id":      nullString(event.VenueID),
		"mode":          mode,
		"query_context": contextJSON,
		"created_at":    event.CreatedAt,
	}

	query, args, err := a.db.Insert("user_events").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user event insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create user event", err)
	}

	return nil
}

// List returns events matching the filter, newest first.
func (a *UserEventAdapter) List(ctx context.Context, filter repositories.UserEventFilter) ([]*entities.UserEvent, error) {
	ds := a.db.From("user_events").
		Select("id", "user_id", "event_type", "venue_id", "mode", "query_context", "created_at")

	if filter.UserID != "" {
		ds = ds.Where(goqu.Ex{"user_id": filter.UserID})
	}
	if filter.VenueID != "" {
		ds = ds.Where(goqu.Ex{"venue_id": filter.VenueID})
	}
	if filter.EventType != "" {
		ds = ds.Where(goqu.Ex{"event_type": string(filter.EventType)})
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	ds = ds.Order(goqu.C("created_at").Desc()).Limit(uint(limit))

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user event list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list user events", err)
	}
	defer rows.Close()

	events := []*entities.UserEvent{}
	for rows.Next() {
		var (
			event       entities.UserEvent
			userID      sql.NullString
			venueID     sql.NullString
			mode        sql.NullString
			contextJSON []byte
		)
		if err := rows.Scan(&event.ID, &userID, &event.EventType, &venueID, &mode, &contextJSON, &event.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan user event row", err)
		}
		if userID.Valid {
			event.UserID = &userID.String
		}
		if venueID.Valid {
			event.VenueID = &venueID.String
		}
		if mode.Valid {
			m := entities.Mode(mode.String)
			event.Mode = &m
		}
		if len(contextJSON) > 0 {
			if err := json.Unmarshal(contextJSON, &event.QueryContext); err != nil {
				return nil, apperrors.NewInternalError("failed to decode query context", err)
			}
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate user event rows", err)
	}

	return events, nil
}
