package scheduling

import (
	"testing"

	"servana/models"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmissible(t *testing.T) {
	const date = "2026-09-07"
	provider := &models.Provider{
		ID:       "p1",
		Template: dayTemplate(date, models.OpenInterval{Start: 9 * 60, End: 17 * 60}),
	}

	active := func(id string, start, end int) models.Booking {
		return models.Booking{ID: id, ProviderID: "p1", Date: date, Start: start, End: end, Status: models.StatusConfirmed}
	}
	candidate := func(start, end int) models.ScheduledInterval {
		return models.ScheduledInterval{Date: date, Start: start, End: end}
	}

	t.Run("free slot inside availability is admissible", func(t *testing.T) {
		assert.True(t, IsAdmissible(provider, candidate(600, 660), nil, ""))
	})

	t.Run("slot outside availability is rejected", func(t *testing.T) {
		assert.False(t, IsAdmissible(provider, candidate(8*60, 9*60), nil, ""))
	})

	t.Run("slot straddling the availability edge is rejected", func(t *testing.T) {
		assert.False(t, IsAdmissible(provider, candidate(16*60+30, 17*60+30), nil, ""))
	})

	t.Run("overlap with an active booking is rejected", func(t *testing.T) {
		existing := []models.Booking{active("b1", 600, 660)}
		assert.False(t, IsAdmissible(provider, candidate(630, 690), existing, ""))
	})

	t.Run("touching endpoints do not conflict", func(t *testing.T) {
		existing := []models.Booking{active("b1", 600, 660)}
		assert.True(t, IsAdmissible(provider, candidate(660, 720), existing, ""))
		assert.True(t, IsAdmissible(provider, candidate(540, 600), existing, ""))
	})

	t.Run("terminal bookings do not occupy their slot", func(t *testing.T) {
		cancelled := active("b1", 600, 660)
		cancelled.Status = models.StatusCancelledByClient
		declined := active("b2", 600, 660)
		declined.Status = models.StatusDeclined

		existing := []models.Booking{cancelled, declined}
		assert.True(t, IsAdmissible(provider, candidate(600, 660), existing, ""))
	})

	t.Run("a booking's own slot is excluded during reschedule", func(t *testing.T) {
		existing := []models.Booking{active("b1", 600, 660)}
		assert.True(t, IsAdmissible(provider, candidate(630, 690), existing, "b1"))
		assert.False(t, IsAdmissible(provider, candidate(630, 690), existing, "other"))
	})

	t.Run("pending bookings occupy their slot", func(t *testing.T) {
		pending := active("b1", 600, 660)
		pending.Status = models.StatusPending
		assert.False(t, IsAdmissible(provider, candidate(610, 650), []models.Booking{pending}, ""))
	})
}
