package scheduling

import (
	"context"
	"time"

	bookingRepo "servana/database/repository/booking"
	providerRepo "servana/database/repository/provider"
	"servana/models"
	"servana/services/events"
)

// CreateRequest carries a client's request for a service slot. Start is
// minutes from midnight on Date; the duration comes from the offering.
type CreateRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
	ServiceID  string `json:"serviceId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Start      int    `json:"start"`
}

// ListFilter narrows a booking listing. The service scopes it to the actor's
// role before querying; ProviderID is honoured for clients and admins only.
type ListFilter struct {
	ProviderID string
	Status     models.BookingStatus
	FromDate   string
	ToDate     string
}

// SchedulingService orchestrates the booking lifecycle: admission-checked
// creation, state transitions, reschedules, listings and the completion
// sweep. Every mutation emits exactly one domain event after persistence.
type SchedulingService interface {
	CreateBooking(ctx context.Context, actor models.Actor, req CreateRequest) (*models.Booking, error)
	Transition(ctx context.Context, actor models.Actor, bookingID string, event TransitionEvent, reason string) (*models.Booking, error)
	Reschedule(ctx context.Context, actor models.Actor, bookingID, newDate string, newStart int) (*models.Booking, error)
	ListBookings(ctx context.Context, actor models.Actor, filter ListFilter) ([]models.Booking, error)
	CompleteElapsed(ctx context.Context, now time.Time) (int, error)
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	Providers providerRepo.ProviderRepository
	Bookings  bookingRepo.BookingRepository
	Locker    ProviderLocker
	Events    events.Publisher

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (svc *DefaultSchedulingService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}
