package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

// UserEventService records user interaction events
type UserEventService struct {
	repo repositories.UserEventRepository
}

// NewUserEventService creates a new user event service
func NewUserEventService(repo repositories.UserEventRepository) *UserEventService {
	return &UserEventService{repo: repo}
}

// Create validates and persists one interaction event, assigning id and
// timestamp. The log is append-only.
func (s *UserEventService) Create(ctx context.Context, event *entities.UserEvent) (*entities.UserEvent, error) {
	if !event.EventType.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown event type %q", event.EventType))
	}
	if event.Mode != nil && !event.Mode.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown mode %q", *event.Mode))
	}

	event.ID = uuid.New().String()
	event.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Track records an event in the background so it never blocks the caller.
func (s *UserEventService) Track(ctx context.Context, event *entities.UserEvent) {
	go func() {
		// Use a fresh context since the request context might be cancelled
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := s.Create(bgCtx, event); err != nil {
			log.Printf("Warning: failed to track user event: %v", err)
		}
	}()
}

// List retrieves events matching the filter, newest first
func (s *UserEventService) List(ctx context.Context, filter repositories.UserEventFilter) ([]*entities.UserEvent, error) {
	return s.repo.List(ctx, filter)
}
