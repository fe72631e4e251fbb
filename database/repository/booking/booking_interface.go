package bookingRepo

import (
	"context"
	"time"

	"servana/models"
)

// ListFilter narrows a booking listing. Zero values mean "no constraint".
// FromDate and ToDate are inclusive "YYYY-MM-DD" bounds.
type ListFilter struct {
	ProviderID string
	ClientID   string
	Status     models.BookingStatus
	FromDate   string
	ToDate     string
}

// BookingRepository defines persistence operations for booking records.
// Bookings are never deleted; terminal records stay queryable for history.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// UpdateFromStatus persists the booking only while the stored document
	// still holds the expected status. ErrBookingStale reports a lost race;
	// callers re-evaluate instead of overwriting a concurrent transition.
	UpdateFromStatus(ctx context.Context, booking *models.Booking, expected models.BookingStatus) error
	// ActiveByProviderDate returns pending and confirmed bookings for one
	// provider on one date, sorted by start ascending.
	ActiveByProviderDate(ctx context.Context, providerID, date string) ([]models.Booking, error)
	// List returns bookings matching the filter, sorted by date then start.
	List(ctx context.Context, filter ListFilter) ([]models.Booking, error)
	// ConfirmedEndedBefore returns confirmed bookings whose interval end has
	// passed relative to now. Used by the completion sweep.
	ConfirmedEndedBefore(ctx context.Context, now time.Time) ([]models.Booking, error)
}
