package events

import (
	"context"

	"servana/models"
)

// Publisher delivers booking domain events to collaborators. Publication
// happens after the state mutation has been persisted; a failed publish is
// logged by the caller and never rolls back or fails the operation.
type Publisher interface {
	Publish(ctx context.Context, event models.BookingEvent) error
}
