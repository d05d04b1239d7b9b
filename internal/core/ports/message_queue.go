package ports

import (
	"context"

	"github.com/GoDakar/CarRentApp/internal/messaging/payloads"
)

// ListingEventPublisher publishes listing mutation events to the queue.
// Used by the HTTP side after a transaction commits.
type ListingEventPublisher interface {
	PublishListingEvent(ctx context.Context, payload payloads.ListingEventPayload) error
}

// ListingEventConsumer consumes listing mutation events.
// Used by the worker to keep the search feed in sync.
type ListingEventConsumer interface {
	StartConsumingListingEvents(ctx context.Context, handler func(context.Context, payloads.ListingEventPayload) error) error
}
