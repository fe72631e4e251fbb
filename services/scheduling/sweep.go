package scheduling

import (
	"context"
	"errors"
	"time"

	bookingRepo "servana/database/repository/booking"
	"servana/models"
	"servana/utils"

	"go.uber.org/zap"
)

// CompleteElapsed moves every confirmed booking whose interval end has passed
// into completed and reports how many were transitioned. The sweep is
// idempotent: an already-completed booking no longer matches the query, so
// re-running it is a no-op rather than an error.
func (svc *DefaultSchedulingService) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	elapsed, err := svc.Bookings.ConfirmedEndedBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	logger := utils.GetLogger()
	completed := 0
	for i := range elapsed {
		booking := elapsed[i]
		if booking.Status != models.StatusConfirmed {
			continue
		}

		oldStatus := booking.Status
		booking.Status = models.StatusCompleted
		booking.LastTransitionAt = now

		if err := svc.Bookings.UpdateFromStatus(ctx, &booking, oldStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingStale) {
				// Raced with a cancel; it no longer needs completing.
				continue
			}
			logger.Error("completion sweep failed to update booking",
				zap.String("bookingID", booking.ID), zap.Error(err))
			continue
		}
		completed++

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
	}
	return completed, nil
}
