package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"servana/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayTemplate(date string, intervals ...models.OpenInterval) map[string][]models.OpenInterval {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return map[string][]models.OpenInterval{
		models.WeekdayKey(day.Weekday()): intervals,
	}
}

func TestEffectiveIntervals(t *testing.T) {
	const date = "2026-09-07"

	t.Run("template day returns its intervals sorted", func(t *testing.T) {
		provider := &models.Provider{
			ID: "p1",
			Template: dayTemplate(date,
				models.OpenInterval{Start: 13 * 60, End: 17 * 60},
				models.OpenInterval{Start: 9 * 60, End: 12 * 60},
			),
		}

		intervals, err := EffectiveIntervals(provider, date)
		require.NoError(t, err)
		require.Len(t, intervals, 2)
		assert.Equal(t, models.OpenInterval{Start: 9 * 60, End: 12 * 60}, intervals[0])
		assert.Equal(t, models.OpenInterval{Start: 13 * 60, End: 17 * 60}, intervals[1])
	})

	t.Run("weekday missing from template means unavailable", func(t *testing.T) {
		provider := &models.Provider{
			ID:       "p1",
			Template: dayTemplate(date, models.OpenInterval{Start: 540, End: 1020}),
		}

		intervals, err := EffectiveIntervals(provider, "2026-09-08")
		require.NoError(t, err)
		assert.Empty(t, intervals)
	})

	t.Run("blocked exception yields empty", func(t *testing.T) {
		provider := &models.Provider{
			ID:       "p1",
			Template: dayTemplate(date, models.OpenInterval{Start: 540, End: 1020}),
			Exceptions: []models.AvailabilityException{
				{Date: date, Blocked: true},
			},
		}

		intervals, err := EffectiveIntervals(provider, date)
		require.NoError(t, err)
		assert.Empty(t, intervals)
	})

	t.Run("partial exception replaces the template entirely", func(t *testing.T) {
		provider := &models.Provider{
			ID:       "p1",
			Template: dayTemplate(date, models.OpenInterval{Start: 540, End: 1020}),
			Exceptions: []models.AvailabilityException{
				{Date: date, Intervals: []models.OpenInterval{{Start: 600, End: 660}}},
			},
		}

		intervals, err := EffectiveIntervals(provider, date)
		require.NoError(t, err)
		require.Len(t, intervals, 1)
		assert.Equal(t, models.OpenInterval{Start: 600, End: 660}, intervals[0])
	})

	t.Run("overlapping and touching template entries are merged", func(t *testing.T) {
		provider := &models.Provider{
			ID: "p1",
			Template: dayTemplate(date,
				models.OpenInterval{Start: 540, End: 600},
				models.OpenInterval{Start: 600, End: 660},
				models.OpenInterval{Start: 630, End: 720},
				models.OpenInterval{Start: 780, End: 840},
			),
		}

		intervals, err := EffectiveIntervals(provider, date)
		require.NoError(t, err)
		require.Len(t, intervals, 2)
		assert.Equal(t, models.OpenInterval{Start: 540, End: 720}, intervals[0])
		assert.Equal(t, models.OpenInterval{Start: 780, End: 840}, intervals[1])
	})

	t.Run("malformed entries are dropped and bounds clamped", func(t *testing.T) {
		provider := &models.Provider{
			ID: "p1",
			Template: dayTemplate(date,
				models.OpenInterval{Start: 300, End: 200},
				models.OpenInterval{Start: -30, End: 60},
				models.OpenInterval{Start: 1400, End: 2000},
			),
		}

		intervals, err := EffectiveIntervals(provider, date)
		require.NoError(t, err)
		require.Len(t, intervals, 2)
		assert.Equal(t, models.OpenInterval{Start: 0, End: 60}, intervals[0])
		assert.Equal(t, models.OpenInterval{Start: 1400, End: models.MinutesPerDay}, intervals[1])
	})

	t.Run("invalid date is rejected", func(t *testing.T) {
		provider := &models.Provider{ID: "p1"}
		_, err := EffectiveIntervals(provider, "07/09/2026")
		require.Error(t, err)
		assert.Equal(t, CodeInvalidInput, CodeOf(err))
	})

	t.Run("result is always sorted and pairwise non-overlapping", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for trial := 0; trial < 200; trial++ {
			raw := make([]models.OpenInterval, rng.Intn(12))
			for i := range raw {
				start := rng.Intn(models.MinutesPerDay)
				raw[i] = models.OpenInterval{Start: start, End: start + rng.Intn(240)}
			}
			provider := &models.Provider{ID: "p1", Template: dayTemplate(date, raw...)}

			intervals, err := EffectiveIntervals(provider, date)
			require.NoError(t, err)
			for i := 1; i < len(intervals); i++ {
				assert.Less(t, intervals[i-1].Start, intervals[i].Start)
				assert.Less(t, intervals[i-1].End, intervals[i].Start,
					"intervals must not overlap or touch after merging")
			}
			for _, iv := range intervals {
				assert.Less(t, iv.Start, iv.End)
			}
		}
	})
}
