package payloads

import (
	"time"

	"github.com/google/uuid"
)

// Listing event actions carried on the queue.
const (
	ListingCreated = "created"
	ListingUpdated = "updated"
	ListingDeleted = "deleted"
)

// ListingEventPayload is published after every committed listing mutation and
// consumed by the worker to refresh the denormalized search feed.
type ListingEventPayload struct {
	Action     string    `json:"action"`
	CarID      uuid.UUID `json:"car_id"`
	Slug       string    `json:"slug"`
	OccurredAt time.Time `json:"occurred_at"`
}
