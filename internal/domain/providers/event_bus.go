package providers

import (
	"context"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to venue events.
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.VenueEvent) error

	// Subscribe subscribes to events on a channel; the returned channel is
	// closed when ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.VenueEvent, error)

	// Close shuts down the bus and all subscriptions
	Close() error
}
