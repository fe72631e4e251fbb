package scheduling

import "servana/models"

// IsAdmissible decides whether the candidate interval may be booked against
// the provider: it must lie fully within one effective availability interval
// and must not overlap any active (pending or confirmed) booking on the same
// date. Touching endpoints do not conflict: a booking ending at 10:00 leaves
// 10:00 free as a start. excludeBookingID skips the booking's own current
// slot during a reschedule; pass "" otherwise.
//
// Callers must hold the provider's admission lock so that check-then-insert
// cannot interleave between two requests for the same provider.
func IsAdmissible(provider *models.Provider, candidate models.ScheduledInterval, existing []models.Booking, excludeBookingID string) bool {
	intervals, err := EffectiveIntervals(provider, candidate.Date)
	if err != nil {
		return false
	}

	contained := false
	for _, iv := range intervals {
		if iv.Contains(candidate.Start, candidate.End) {
			contained = true
			break
		}
	}
	if !contained {
		return false
	}

	for i := range existing {
		b := &existing[i]
		if b.ID == excludeBookingID || b.Date != candidate.Date || !b.Status.IsActive() {
			continue
		}
		occupied := models.OpenInterval{Start: b.Start, End: b.End}
		if occupied.Overlaps(candidate.Start, candidate.End) {
			return false
		}
	}
	return true
}
