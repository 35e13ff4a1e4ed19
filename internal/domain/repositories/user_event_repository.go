package repositories

import (
	"context"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

// UserEventFilter narrows event listings.
type UserEventFilter struct {
	UserID    string
	VenueID   string
	EventType entities.EventType
	Limit     int
}

// UserEventRepository defines the interface for the append-only event log.
type UserEventRepository interface {
	Create(ctx context.Context, event *entities.UserEvent) error

	List(ctx context.Context, filter UserEventFilter) ([]*entities.UserEvent, error)
}
