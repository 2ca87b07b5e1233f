package service

import (
	"time"

	"gathered_backend/internal/model"
)

// Flame intensity tier boundaries, in consecutive days. Display logic and
// tests share these; do not inline the numbers anywhere else.
const (
	EmberThreshold   = 1
	GlowThreshold    = 3
	BurningThreshold = 7
	OnFireThreshold  = 14
)

// FlameIntensityFor maps a current streak length onto its display tier.
func FlameIntensityFor(currentStreak int) model.FlameIntensity {
	switch {
	case currentStreak >= OnFireThreshold:
		return model.FlameOnFire
	case currentStreak >= BurningThreshold:
		return model.FlameBurning
	case currentStreak >= GlowThreshold:
		return model.FlameGlow
	case currentStreak >= EmberThreshold:
		return model.FlameEmber
	default:
		return model.FlameOut
	}
}

// truncateToDay drops the time-of-day component so streak math only ever
// compares calendar days.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween is the calendar-day delta from a to b (positive when b is
// later).
func daysBetween(a, b time.Time) int {
	a = truncateToDay(a)
	b = truncateToDay(b)
	return int(b.Sub(a).Hours() / 24)
}

// ApplyActivity folds one day of activity into a streak record and returns
// the updated record. A nil existing record starts a fresh streak of 1.
// The same calendar day leaves the counters untouched, the very next day
// extends the streak, and anything else (a gap, or an out-of-order past
// date) resets it to 1. Total over its inputs; never fails.
func ApplyActivity(existing *model.StreakRecord, userID, groupID uint, activityDate time.Time) model.StreakRecord {
	day := truncateToDay(activityDate)

	if existing == nil {
		return model.StreakRecord{
			UserID:           userID,
			GroupID:          groupID,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: day,
			Intensity:        FlameIntensityFor(1),
		}
	}

	updated := *existing

	switch daysBetween(existing.LastActivityDate, day) {
	case 0:
		// Same day: idempotent for streak purposes.
	case 1:
		updated.CurrentStreak++
	default:
		updated.CurrentStreak = 1
	}

	if updated.CurrentStreak > updated.LongestStreak {
		updated.LongestStreak = updated.CurrentStreak
	}
	updated.LastActivityDate = day
	updated.Intensity = FlameIntensityFor(updated.CurrentStreak)

	return updated
}
