package service

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"gathered_backend/internal/model"
	"gathered_backend/pkg/logger"
	"gathered_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// NudgeDispatcher delivers a fired nudge. The default implementation just
// logs; push delivery can be plugged in without touching the planner.
type NudgeDispatcher interface {
	Dispatch(userID uint)
}

type logDispatcher struct{}

func (logDispatcher) Dispatch(userID uint) {
	logger.Log.Info("nudge fired", zap.Uint("userId", userID))
}

// NudgePlanner owns at most one armed timer per user. Arming always
// cancels the previous timer first, so a preference change can never
// leave two pending nudges. A fired nudge does not re-arm itself;
// re-arming only happens on the next preference load or change.
type NudgePlanner struct {
	Dispatcher NudgeDispatcher

	// Now is the planner clock; overridable in tests.
	Now func() time.Time

	mu        sync.Mutex
	nudgeHour int
	timers    map[uint]*time.Timer
}

func NewNudgePlanner(nudgeHour int, dispatcher NudgeDispatcher) *NudgePlanner {
	if dispatcher == nil {
		dispatcher = logDispatcher{}
	}
	return &NudgePlanner{
		Dispatcher: dispatcher,
		Now:        time.Now,
		nudgeHour:  nudgeHour,
		timers:     make(map[uint]*time.Timer),
	}
}

// SetNudgeHour changes the hour used for nudges armed from now on;
// already armed timers keep their original instant.
func (p *NudgePlanner) SetNudgeHour(hour int) {
	if hour < 0 || hour > 23 {
		return
	}
	p.mu.Lock()
	p.nudgeHour = hour
	p.mu.Unlock()
}

// Schedule computes the next nudge instant for a preference and arms a
// timer for it. Cadence off cancels any pending nudge and arms nothing.
func (p *NudgePlanner) Schedule(userID uint, pref *model.NotificationPreference) {
	p.Cancel(userID)

	if pref == nil || pref.Cadence == model.CadenceOff {
		return
	}

	p.mu.Lock()
	hour := p.nudgeHour
	p.mu.Unlock()

	target := nextNudgeTime(p.Now(), pref, hour)
	delay := target.Sub(p.Now())
	if delay < 0 {
		delay = 0
	}

	p.mu.Lock()
	p.timers[userID] = time.AfterFunc(delay, func() {
		p.mu.Lock()
		delete(p.timers, userID)
		p.mu.Unlock()
		monitoring.NudgeCounter.WithLabelValues("fired").Inc()
		p.Dispatcher.Dispatch(userID)
	})
	p.mu.Unlock()

	monitoring.NudgeCounter.WithLabelValues("armed").Inc()
	logger.Log.Debug("nudge armed",
		zap.Uint("userId", userID),
		zap.String("cadence", string(pref.Cadence)),
		zap.Time("at", target))
}

// Cancel stops the user's pending nudge, if any.
func (p *NudgePlanner) Cancel(userID uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.timers[userID]; ok {
		t.Stop()
		delete(p.timers, userID)
		monitoring.NudgeCounter.WithLabelValues("cancelled").Inc()
	}
}

// Armed reports whether a nudge is pending for the user.
func (p *NudgePlanner) Armed(userID uint) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.timers[userID]
	return ok
}

// Stop cancels every pending nudge; called on shutdown.
func (p *NudgePlanner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for userID, t := range p.timers {
		t.Stop()
		delete(p.timers, userID)
	}
}

// nextNudgeTime computes the nudge instant: one day out for daily, seven
// for weekly, normalized to nudgeHour local time, then clamped out of the
// quiet-hours window. The clamp keeps the calendar date and only moves
// the time of day to the quiet-hours end.
func nextNudgeTime(now time.Time, pref *model.NotificationPreference, nudgeHour int) time.Time {
	days := 1
	if pref.Cadence == model.CadenceWeekly {
		days = 7
	}

	target := now.AddDate(0, 0, days)
	target = time.Date(target.Year(), target.Month(), target.Day(), nudgeHour, 0, 0, 0, target.Location())

	start, okStart := parseClock(pref.QuietHoursStart)
	end, okEnd := parseClock(pref.QuietHoursEnd)
	if !okStart || !okEnd {
		return target
	}

	if inQuietWindow(minutesOfDay(target), start, end) {
		target = time.Date(target.Year(), target.Month(), target.Day(), end/60, end%60, 0, 0, target.Location())
	}

	return target
}

// inQuietWindow checks membership in [start, end), where a start after
// the end means the window wraps midnight.
func inQuietWindow(t, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return t >= start && t < end
	}
	return t >= start || t < end
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// parseClock parses "HH:MM" into minutes of day.
func parseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
