package scheduling

import (
	"sort"
	"time"

	"servana/models"
)

// EffectiveIntervals computes a provider's bookable intervals for one date:
// the weekly template entry for that weekday, overridden by a date exception
// when one exists. A fully blocked exception yields no availability; a partial
// exception replaces the day's template entirely. The result is sorted by
// start and pairwise non-overlapping. Pure function of provider state and date.
func EffectiveIntervals(provider *models.Provider, date string) ([]models.OpenInterval, error) {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, NewInvalidInputError("invalid date, expected YYYY-MM-DD: " + date)
	}

	var raw []models.OpenInterval
	if exc := provider.ExceptionFor(date); exc != nil {
		if exc.Blocked {
			return nil, nil
		}
		raw = exc.Intervals
	} else {
		raw = provider.Template[models.WeekdayKey(day.Weekday())]
	}

	return normalizeIntervals(raw), nil
}

// normalizeIntervals drops malformed entries, clamps to the day boundary,
// sorts by start, and merges overlapping or touching intervals.
func normalizeIntervals(raw []models.OpenInterval) []models.OpenInterval {
	cleaned := make([]models.OpenInterval, 0, len(raw))
	for _, iv := range raw {
		if iv.Start < 0 {
			iv.Start = 0
		}
		if iv.End > models.MinutesPerDay {
			iv.End = models.MinutesPerDay
		}
		if iv.End <= iv.Start {
			continue
		}
		cleaned = append(cleaned, iv)
	}
	if len(cleaned) == 0 {
		return nil
	}

	sort.Slice(cleaned, func(i, j int) bool {
		return cleaned[i].Start < cleaned[j].Start
	})

	merged := cleaned[:1]
	for _, iv := range cleaned[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
