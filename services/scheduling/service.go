package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "servana/database/repository/booking"
	providerRepo "servana/database/repository/provider"
	"servana/models"
	"servana/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the request, serializes the admission check on the
// provider's lock, and persists a new pending booking (confirmed directly when
// the provider auto-confirms). A booking.created event is published after the
// record is durable.
func (svc *DefaultSchedulingService) CreateBooking(ctx context.Context, actor models.Actor, req CreateRequest) (*models.Booking, error) {
	if actor.ID == "" {
		return nil, NewUnauthenticatedError("no authenticated actor")
	}
	if actor.Role != models.RoleClient {
		return nil, NewUnauthorizedError("only clients may create bookings")
	}

	provider, err := svc.Providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, NewNotFoundError("provider " + req.ProviderID + " not found")
		}
		return nil, err
	}

	offering := provider.ServiceByID(req.ServiceID)
	if offering == nil {
		return nil, NewNotFoundError(fmt.Sprintf("service %s not offered by provider %s", req.ServiceID, req.ProviderID))
	}
	if offering.DurationMinutes <= 0 {
		return nil, NewInvalidInputError("service duration must be positive")
	}

	interval := models.ScheduledInterval{
		Date:  req.Date,
		Start: req.Start,
		End:   req.Start + offering.DurationMinutes,
	}
	if err := svc.validateInterval(interval); err != nil {
		return nil, err
	}

	release, err := svc.acquireAdmission(ctx, provider.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := svc.Bookings.ActiveByProviderDate(ctx, provider.ID, interval.Date)
	if err != nil {
		return nil, err
	}
	if !IsAdmissible(provider, interval, existing, "") {
		return nil, NewSlotUnavailableError(fmt.Sprintf("slot %s %d-%d is not available", interval.Date, interval.Start, interval.End))
	}

	now := svc.now()
	status := models.StatusPending
	if provider.Policy.AutoConfirm {
		status = models.StatusConfirmed
	}
	booking := &models.Booking{
		ID:               uuid.New().String(),
		ProviderID:       provider.ID,
		ClientID:         actor.ID,
		ServiceID:        offering.ID,
		Date:             interval.Date,
		Start:            interval.Start,
		End:              interval.End,
		DurationMinutes:  offering.DurationMinutes,
		Status:           status,
		CreatedAt:        now,
		LastTransitionAt: now,
	}

	if err := svc.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	svc.publish(ctx, models.BookingEvent{
		Type:       models.EventBookingCreated,
		BookingID:  booking.ID,
		ProviderID: booking.ProviderID,
		ClientID:   booking.ClientID,
		NewStatus:  booking.Status,
		Interval:   booking.Interval(),
		OccurredAt: now,
	})
	return booking, nil
}

// Transition fires a lifecycle event on a booking: authorization per the
// transition table, then the state machine, then persistence, then exactly
// one booking.status_changed event.
func (svc *DefaultSchedulingService) Transition(ctx context.Context, actor models.Actor, bookingID string, event TransitionEvent, reason string) (*models.Booking, error) {
	booking, err := svc.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := Authorize(actor, booking, event); err != nil {
		return nil, err
	}
	newStatus, err := Apply(booking.Status, event)
	if err != nil {
		return nil, err
	}

	now := svc.now()
	oldStatus := booking.Status
	booking.Status = newStatus
	booking.LastTransitionAt = now
	if reason != "" {
		switch event {
		case EventCancelByClient, EventCancelByProvider, EventDecline:
			booking.CancelReason = reason
		}
	}

	// Compare-and-commit on the status we read: a transition that raced in
	// between wins, and this one is rejected instead of overwriting it.
	if err := svc.Bookings.UpdateFromStatus(ctx, booking, oldStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingStale) {
			return nil, NewInvalidTransitionError(fmt.Sprintf("booking %s was modified concurrently; re-fetch and retry", booking.ID))
		}
		return nil, err
	}

	svc.publish(ctx, models.BookingEvent{
		Type:       models.EventBookingStatusChanged,
		BookingID:  booking.ID,
		ProviderID: booking.ProviderID,
		ClientID:   booking.ClientID,
		OldStatus:  oldStatus,
		NewStatus:  booking.Status,
		Interval:   booking.Interval(),
		OccurredAt: now,
	})
	return booking, nil
}

// Reschedule moves a pending or confirmed booking to a new interval. The old
// interval is appended to the booking's history exactly once; the admission
// check excludes the booking's own current slot.
func (svc *DefaultSchedulingService) Reschedule(ctx context.Context, actor models.Actor, bookingID, newDate string, newStart int) (*models.Booking, error) {
	booking, err := svc.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := authorizeReschedule(actor, booking); err != nil {
		return nil, err
	}
	if !booking.Status.IsActive() {
		return nil, NewInvalidTransitionError(fmt.Sprintf("only pending or confirmed bookings can be rescheduled; booking is %s", booking.Status))
	}

	provider, err := svc.Providers.GetByID(ctx, booking.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, NewNotFoundError("provider " + booking.ProviderID + " not found")
		}
		return nil, err
	}

	newInterval := models.ScheduledInterval{
		Date:  newDate,
		Start: newStart,
		End:   newStart + booking.DurationMinutes,
	}
	if err := svc.validateInterval(newInterval); err != nil {
		return nil, err
	}

	release, err := svc.acquireAdmission(ctx, provider.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	// Reload under the lock: a transition may have landed since the first
	// read, and a cancelled booking must not be resurrected by this write.
	booking, err = svc.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.IsActive() {
		return nil, NewInvalidTransitionError(fmt.Sprintf("only pending or confirmed bookings can be rescheduled; booking is %s", booking.Status))
	}
	heldStatus := booking.Status

	existing, err := svc.Bookings.ActiveByProviderDate(ctx, provider.ID, newInterval.Date)
	if err != nil {
		return nil, err
	}
	if !IsAdmissible(provider, newInterval, existing, booking.ID) {
		return nil, NewSlotUnavailableError(fmt.Sprintf("slot %s %d-%d is not available", newInterval.Date, newInterval.Start, newInterval.End))
	}

	now := svc.now()
	booking.History = append(booking.History, booking.Interval())
	booking.Date = newInterval.Date
	booking.Start = newInterval.Start
	booking.End = newInterval.End
	booking.LastTransitionAt = now

	if err := svc.Bookings.UpdateFromStatus(ctx, booking, heldStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingStale) {
			return nil, NewInvalidTransitionError(fmt.Sprintf("booking %s was modified concurrently; re-fetch and retry", booking.ID))
		}
		return nil, err
	}

	svc.publish(ctx, models.BookingEvent{
		Type:       models.EventBookingRescheduled,
		BookingID:  booking.ID,
		ProviderID: booking.ProviderID,
		ClientID:   booking.ClientID,
		NewStatus:  booking.Status,
		Interval:   booking.Interval(),
		OccurredAt: now,
	})
	return booking, nil
}

// ListBookings returns bookings visible to the actor: clients see their own,
// providers see bookings against their services, admins see everything.
// Results are ordered by date and start ascending.
func (svc *DefaultSchedulingService) ListBookings(ctx context.Context, actor models.Actor, filter ListFilter) ([]models.Booking, error) {
	if actor.ID == "" {
		return nil, NewUnauthenticatedError("no authenticated actor")
	}

	repoFilter := bookingRepo.ListFilter{
		Status:   filter.Status,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	switch actor.Role {
	case models.RoleClient:
		repoFilter.ClientID = actor.ID
		repoFilter.ProviderID = filter.ProviderID
	case models.RoleProvider:
		repoFilter.ProviderID = actor.ID
	case models.RoleAdmin:
		repoFilter.ProviderID = filter.ProviderID
	default:
		return nil, NewUnauthorizedError(fmt.Sprintf("unknown role %q", actor.Role))
	}

	return svc.Bookings.List(ctx, repoFilter)
}

func (svc *DefaultSchedulingService) loadBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := svc.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, NewNotFoundError("booking " + bookingID + " not found")
		}
		return nil, err
	}
	return booking, nil
}

// validateInterval rejects malformed or past intervals. The future-start rule
// is checked once here, at creation or reschedule time.
func (svc *DefaultSchedulingService) validateInterval(interval models.ScheduledInterval) error {
	if interval.Start < 0 || interval.End > models.MinutesPerDay {
		return NewInvalidInputError("interval must fall within a single day")
	}
	if interval.End <= interval.Start {
		return NewInvalidInputError("interval duration must be positive")
	}
	start, err := interval.StartTime(time.Local)
	if err != nil {
		return NewInvalidInputError("invalid date, expected YYYY-MM-DD: " + interval.Date)
	}
	if !start.After(svc.now()) {
		return NewInvalidInputError("booking start must be in the future")
	}
	return nil
}

// acquireAdmission takes the provider's lock; bounded contention surfaces as
// SlotUnavailable, never as a generic failure.
func (svc *DefaultSchedulingService) acquireAdmission(ctx context.Context, providerID string) (func(), error) {
	release, err := svc.Locker.Acquire(ctx, providerID)
	if err != nil {
		if errors.Is(err, ErrLockContended) {
			return nil, NewSlotUnavailableError("provider is processing another booking; please retry")
		}
		return nil, err
	}
	return release, nil
}

func authorizeReschedule(actor models.Actor, booking *models.Booking) error {
	if actor.ID == "" {
		return NewUnauthenticatedError("no authenticated actor")
	}
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleClient:
		if actor.ID == booking.ClientID {
			return nil
		}
	case models.RoleProvider:
		if actor.ID == booking.ProviderID {
			return nil
		}
	}
	return NewUnauthorizedError(fmt.Sprintf("actor %s (%s) may not reschedule booking %s", actor.ID, actor.Role, booking.ID))
}

// publish emits a domain event after a successful state mutation. Emission
// failures are logged and never affect the caller's result.
func (svc *DefaultSchedulingService) publish(ctx context.Context, event models.BookingEvent) {
	if svc.Events == nil {
		return
	}
	if err := svc.Events.Publish(ctx, event); err != nil {
		utils.GetLogger().Error("failed to publish booking event",
			zap.String("type", event.Type),
			zap.String("bookingID", event.BookingID),
			zap.Error(err))
	}
}
