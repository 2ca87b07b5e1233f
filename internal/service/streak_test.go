package service

import (
	"testing"
	"time"

	"gathered_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApplyActivityFreshStreak(t *testing.T) {
	got := ApplyActivity(nil, 1, 2, day(2024, time.January, 1))

	assert.Equal(t, uint(1), got.UserID)
	assert.Equal(t, uint(2), got.GroupID)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 1, got.LongestStreak)
	assert.Equal(t, day(2024, time.January, 1), got.LastActivityDate)
	assert.Equal(t, model.FlameEmber, got.Intensity)
}

func TestApplyActivityConsecutiveDayExtends(t *testing.T) {
	existing := &model.StreakRecord{
		UserID:           1,
		GroupID:          2,
		CurrentStreak:    6,
		LongestStreak:    9,
		LastActivityDate: day(2024, time.January, 10),
	}

	got := ApplyActivity(existing, 1, 2, day(2024, time.January, 11))

	assert.Equal(t, 7, got.CurrentStreak)
	assert.Equal(t, 9, got.LongestStreak)
	assert.Equal(t, model.FlameBurning, got.Intensity)
}

func TestApplyActivityGapResetsButKeepsLongest(t *testing.T) {
	existing := &model.StreakRecord{
		UserID:           1,
		GroupID:          2,
		CurrentStreak:    6,
		LongestStreak:    9,
		LastActivityDate: day(2024, time.January, 10),
	}

	got := ApplyActivity(existing, 1, 2, day(2024, time.January, 20))

	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 9, got.LongestStreak)
	assert.Equal(t, day(2024, time.January, 20), got.LastActivityDate)
	assert.Equal(t, model.FlameEmber, got.Intensity)
}

func TestApplyActivitySameDayIsIdempotent(t *testing.T) {
	existing := &model.StreakRecord{
		UserID:           1,
		GroupID:          2,
		CurrentStreak:    4,
		LongestStreak:    4,
		LastActivityDate: day(2024, time.March, 5),
	}

	got := ApplyActivity(existing, 1, 2, day(2024, time.March, 5))

	assert.Equal(t, 4, got.CurrentStreak)
	assert.Equal(t, 4, got.LongestStreak)

	// A different time of day on the same date counts as the same day.
	lateSameDay := time.Date(2024, time.March, 5, 23, 45, 0, 0, time.UTC)
	got = ApplyActivity(existing, 1, 2, lateSameDay)
	assert.Equal(t, 4, got.CurrentStreak)
	assert.Equal(t, day(2024, time.March, 5), got.LastActivityDate)
}

func TestApplyActivityPastDateResets(t *testing.T) {
	existing := &model.StreakRecord{
		UserID:           1,
		GroupID:          2,
		CurrentStreak:    5,
		LongestStreak:    5,
		LastActivityDate: day(2024, time.June, 10),
	}

	got := ApplyActivity(existing, 1, 2, day(2024, time.June, 8))

	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 5, got.LongestStreak)
	assert.Equal(t, day(2024, time.June, 8), got.LastActivityDate)
}

func TestApplyActivityNewRecordBestStreak(t *testing.T) {
	existing := &model.StreakRecord{
		UserID:           1,
		GroupID:          2,
		CurrentStreak:    9,
		LongestStreak:    9,
		LastActivityDate: day(2024, time.February, 1),
	}

	got := ApplyActivity(existing, 1, 2, day(2024, time.February, 2))

	assert.Equal(t, 10, got.CurrentStreak)
	assert.Equal(t, 10, got.LongestStreak)
}

func TestFourteenDayWalkCrossesEveryTier(t *testing.T) {
	expected := map[int]model.FlameIntensity{
		1:  model.FlameEmber,
		2:  model.FlameEmber,
		3:  model.FlameGlow,
		6:  model.FlameGlow,
		7:  model.FlameBurning,
		13: model.FlameBurning,
		14: model.FlameOnFire,
	}

	var record *model.StreakRecord
	start := day(2024, time.April, 1)
	for i := 0; i < 14; i++ {
		updated := ApplyActivity(record, 1, 2, start.AddDate(0, 0, i))
		record = &updated

		assert.Equal(t, i+1, record.CurrentStreak)
		assert.GreaterOrEqual(t, record.LongestStreak, record.CurrentStreak)
		if want, ok := expected[i+1]; ok {
			assert.Equalf(t, want, record.Intensity, "day %d", i+1)
		}
	}
}

func TestFlameIntensityFor(t *testing.T) {
	assert.Equal(t, model.FlameOut, FlameIntensityFor(0))
	assert.Equal(t, model.FlameEmber, FlameIntensityFor(1))
	assert.Equal(t, model.FlameEmber, FlameIntensityFor(2))
	assert.Equal(t, model.FlameGlow, FlameIntensityFor(3))
	assert.Equal(t, model.FlameGlow, FlameIntensityFor(6))
	assert.Equal(t, model.FlameBurning, FlameIntensityFor(7))
	assert.Equal(t, model.FlameBurning, FlameIntensityFor(13))
	assert.Equal(t, model.FlameOnFire, FlameIntensityFor(14))
	assert.Equal(t, model.FlameOnFire, FlameIntensityFor(365))
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2024, time.May, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, time.May, 2, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 1, daysBetween(a, b))
	assert.Equal(t, -1, daysBetween(b, a))
	assert.Equal(t, 0, daysBetween(a, a))
}
