package service

import (
	"testing"
	"time"

	"gathered_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func pref(cadence model.NudgeCadence, quietStart, quietEnd string) *model.NotificationPreference {
	return &model.NotificationPreference{
		UserID:          1,
		Cadence:         cadence,
		QuietHoursStart: quietStart,
		QuietHoursEnd:   quietEnd,
	}
}

func TestNextNudgeTimeDaily(t *testing.T) {
	now := time.Date(2024, time.May, 10, 15, 30, 0, 0, time.UTC)

	got := nextNudgeTime(now, pref(model.CadenceDaily, "22:00", "07:00"), 9)

	// 09:00 is outside the 22:00-07:00 window, so no clamping.
	assert.Equal(t, time.Date(2024, time.May, 11, 9, 0, 0, 0, time.UTC), got)
}

func TestNextNudgeTimeWeekly(t *testing.T) {
	now := time.Date(2024, time.May, 10, 15, 30, 0, 0, time.UTC)

	got := nextNudgeTime(now, pref(model.CadenceWeekly, "22:00", "07:00"), 9)

	assert.Equal(t, time.Date(2024, time.May, 17, 9, 0, 0, 0, time.UTC), got)
}

func TestNextNudgeTimeClampedToQuietEnd(t *testing.T) {
	now := time.Date(2024, time.May, 10, 15, 30, 0, 0, time.UTC)

	got := nextNudgeTime(now, pref(model.CadenceDaily, "08:00", "10:00"), 9)

	// 09:00 falls inside quiet hours; the nudge moves to the window end
	// on the same date.
	assert.Equal(t, time.Date(2024, time.May, 11, 10, 0, 0, 0, time.UTC), got)
}

func TestNextNudgeTimeQuietWindowWrapsMidnight(t *testing.T) {
	now := time.Date(2024, time.May, 10, 15, 30, 0, 0, time.UTC)

	// 22:00-09:30 wraps midnight and covers 09:00.
	got := nextNudgeTime(now, pref(model.CadenceDaily, "22:00", "09:30"), 9)
	assert.Equal(t, time.Date(2024, time.May, 11, 9, 30, 0, 0, time.UTC), got)

	// The window end itself is allowed: quiet hours are [start, end).
	got = nextNudgeTime(now, pref(model.CadenceDaily, "22:00", "09:00"), 9)
	assert.Equal(t, time.Date(2024, time.May, 11, 9, 0, 0, 0, time.UTC), got)
}

func TestNextNudgeTimeMalformedQuietHoursIgnored(t *testing.T) {
	now := time.Date(2024, time.May, 10, 15, 30, 0, 0, time.UTC)

	got := nextNudgeTime(now, pref(model.CadenceDaily, "25:00", "banana"), 9)

	assert.Equal(t, time.Date(2024, time.May, 11, 9, 0, 0, 0, time.UTC), got)
}

func TestInQuietWindow(t *testing.T) {
	// Plain window 08:00-10:00.
	assert.False(t, inQuietWindow(7*60, 8*60, 10*60))
	assert.True(t, inQuietWindow(8*60, 8*60, 10*60))
	assert.True(t, inQuietWindow(9*60, 8*60, 10*60))
	assert.False(t, inQuietWindow(10*60, 8*60, 10*60))

	// Wrapping window 22:00-07:00.
	assert.True(t, inQuietWindow(23*60, 22*60, 7*60))
	assert.True(t, inQuietWindow(3*60, 22*60, 7*60))
	assert.False(t, inQuietWindow(7*60, 22*60, 7*60))
	assert.False(t, inQuietWindow(12*60, 22*60, 7*60))

	// Equal start and end means no quiet hours at all.
	assert.False(t, inQuietWindow(9*60, 9*60, 9*60))
}

func TestParseClock(t *testing.T) {
	m, ok := parseClock("09:30")
	assert.True(t, ok)
	assert.Equal(t, 9*60+30, m)

	m, ok = parseClock("00:00")
	assert.True(t, ok)
	assert.Equal(t, 0, m)

	m, ok = parseClock("23:59")
	assert.True(t, ok)
	assert.Equal(t, 23*60+59, m)

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:34:56"} {
		_, ok := parseClock(bad)
		assert.Falsef(t, ok, "parseClock(%q)", bad)
	}
}

func TestScheduleArmsAndOffCancels(t *testing.T) {
	planner := NewNudgePlanner(9, nil)
	defer planner.Stop()

	planner.Schedule(1, pref(model.CadenceDaily, "", ""))
	assert.True(t, planner.Armed(1))

	planner.Schedule(1, pref(model.CadenceOff, "", ""))
	assert.False(t, planner.Armed(1))
}

func TestScheduleReplacesExistingTimer(t *testing.T) {
	planner := NewNudgePlanner(9, nil)
	defer planner.Stop()

	planner.Schedule(1, pref(model.CadenceDaily, "", ""))
	planner.Schedule(1, pref(model.CadenceWeekly, "", ""))

	assert.True(t, planner.Armed(1))

	planner.Cancel(1)
	assert.False(t, planner.Armed(1))
}

func TestScheduleNilPreferenceStaysIdle(t *testing.T) {
	planner := NewNudgePlanner(9, nil)
	defer planner.Stop()

	planner.Schedule(1, nil)
	assert.False(t, planner.Armed(1))
}

type recordingDispatcher struct {
	fired chan uint
}

func (d *recordingDispatcher) Dispatch(userID uint) {
	d.fired <- userID
}

func TestFiredNudgeDoesNotRearm(t *testing.T) {
	dispatcher := &recordingDispatcher{fired: make(chan uint, 1)}
	planner := NewNudgePlanner(9, dispatcher)
	defer planner.Stop()

	planner.Schedule(1, pref(model.CadenceDaily, "", ""))

	// Collapse the armed timer so it fires now instead of tomorrow.
	planner.mu.Lock()
	planner.timers[1].Reset(0)
	planner.mu.Unlock()

	select {
	case userID := <-dispatcher.fired:
		assert.Equal(t, uint(1), userID)
	case <-time.After(2 * time.Second):
		t.Fatal("nudge never fired")
	}

	assert.Eventually(t, func() bool { return !planner.Armed(1) },
		time.Second, 10*time.Millisecond)
}

func TestStopDisarmsEverything(t *testing.T) {
	planner := NewNudgePlanner(9, nil)

	planner.Schedule(1, pref(model.CadenceDaily, "", ""))
	planner.Schedule(2, pref(model.CadenceWeekly, "", ""))

	planner.Stop()

	assert.False(t, planner.Armed(1))
	assert.False(t, planner.Armed(2))
}
