package models

import "time"

// Domain event types published after successful booking mutations.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingRescheduled   = "booking.rescheduled"
)

// BookingEvent is the payload carried by every booking domain event.
// Consumers are expected to deduplicate on BookingID plus Type, so delivery
// is at-least-once from the core's perspective.
type BookingEvent struct {
	Type       string            `json:"type"`
	BookingID  string            `json:"bookingId"`
	ProviderID string            `json:"providerId"`
	ClientID   string            `json:"clientId"`
	OldStatus  BookingStatus     `json:"oldStatus,omitempty"`
	NewStatus  BookingStatus     `json:"newStatus"`
	Interval   ScheduledInterval `json:"interval"`
	OccurredAt time.Time         `json:"occurredAt"`
}
