package scheduling

import (
	"fmt"

	"servana/models"
)

// TransitionEvent names a request to move a booking along its lifecycle.
type TransitionEvent string

const (
	EventAccept           TransitionEvent = "accept"
	EventDecline          TransitionEvent = "decline"
	EventCancelByClient   TransitionEvent = "cancel_by_client"
	EventCancelByProvider TransitionEvent = "cancel_by_provider"
	EventComplete         TransitionEvent = "complete"
)

// transitions maps event -> legal source statuses -> target status.
var transitions = map[TransitionEvent]map[models.BookingStatus]models.BookingStatus{
	EventAccept: {
		models.StatusPending: models.StatusConfirmed,
	},
	EventDecline: {
		models.StatusPending: models.StatusDeclined,
	},
	EventCancelByClient: {
		models.StatusPending:   models.StatusCancelledByClient,
		models.StatusConfirmed: models.StatusCancelledByClient,
	},
	EventCancelByProvider: {
		models.StatusConfirmed: models.StatusCancelledByProvider,
	},
	EventComplete: {
		models.StatusConfirmed: models.StatusCompleted,
	},
}

// Apply resolves the status the event moves the booking into. Transitions are
// monotonic: terminal statuses have no outgoing edges, and no booking ever
// re-enters a status it has exited.
func Apply(current models.BookingStatus, event TransitionEvent) (models.BookingStatus, error) {
	rules, ok := transitions[event]
	if !ok {
		return "", NewInvalidInputError(fmt.Sprintf("unknown transition event %q", event))
	}
	if current.IsTerminal() {
		return "", NewInvalidTransitionError(fmt.Sprintf("booking is already %s; no further transitions", current))
	}
	next, ok := rules[current]
	if !ok {
		return "", NewInvalidTransitionError(fmt.Sprintf("event %q is not valid from status %s", event, current))
	}
	return next, nil
}

// Authorize checks that the actor may fire the event on this booking.
// Providers act only on bookings against their own services, clients only on
// their own bookings; admins may trigger anything. EventComplete is reserved
// for the time-triggered sweep and admins.
func Authorize(actor models.Actor, booking *models.Booking, event TransitionEvent) error {
	if actor.ID == "" {
		return NewUnauthenticatedError("no authenticated actor")
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}

	switch event {
	case EventAccept, EventDecline, EventCancelByProvider:
		if actor.Role == models.RoleProvider && actor.ID == booking.ProviderID {
			return nil
		}
	case EventCancelByClient:
		if actor.Role == models.RoleClient && actor.ID == booking.ClientID {
			return nil
		}
	case EventComplete:
		// system sweep bypasses Authorize; everyone else needs admin
	}
	return NewUnauthorizedError(fmt.Sprintf("actor %s (%s) may not trigger %q on booking %s", actor.ID, actor.Role, event, booking.ID))
}
