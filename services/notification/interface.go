package notification

import (
	"context"

	"servana/models"
)

// NotificationService is the trigger adapter for the external notification
// system. The scheduling core never calls it directly: it publishes domain
// events, and the background worker hands each event here. Delivery is
// fire-and-forget from the core's perspective; consumers deduplicate on
// booking id plus event type.
type NotificationService interface {
	NotifyBookingEvent(ctx context.Context, event models.BookingEvent) error
}
