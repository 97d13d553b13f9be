// Package streak computes daily continuity, both the global activity streak
// and the per-habit streaks.
package streak

import (
	"time"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/progress"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Change describes what Recompute did.
type Change int

const (
	// Unchanged means the counters were left alone.
	Unchanged Change = iota
	// Extended means today continued yesterday's streak.
	Extended
	// Started means today began a new streak.
	Started
	// Broken means the streak was reset to zero.
	Broken
)

// Recompute updates the global streak for today given whether today is
// active. Calling it again on the same day with no new activity is a no-op.
func Recompute(p *progress.UserProgress, active bool, now time.Time) Change {
	today := timeutil.Day(now)
	yesterday := timeutil.Yesterday(now)

	if !active {
		if p.LastActiveDate != "" && p.LastActiveDate < yesterday && p.CurrentStreak != 0 {
			p.CurrentStreak = 0
			return Broken
		}
		return Unchanged
	}

	change := Unchanged
	switch p.LastActiveDate {
	case today:
	case yesterday:
		p.CurrentStreak++
		change = Extended
	default:
		p.CurrentStreak = 1
		change = Started
	}
	p.LastActiveDate = today
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	return change
}

// RecomputeFromLog evaluates today's activity from the log and recomputes.
func RecomputeFromLog(p *progress.UserProgress, log activity.Log, now time.Time) Change {
	return Recompute(p, log.ActiveOn(timeutil.Day(now)), now)
}

// CompleteHabit marks h done today and advances its streak. It returns false
// when the habit was already completed today.
func CompleteHabit(h *activity.Habit, now time.Time) bool {
	today := timeutil.Day(now)
	if h.LastCompleted == today {
		h.CompletedToday = true
		return false
	}
	if h.LastCompleted == timeutil.Yesterday(now) {
		h.Streak++
	} else {
		h.Streak = 1
	}
	h.CompletedToday = true
	h.LastCompleted = today
	return true
}

// NormalizeHabits clears completedToday on habits not completed today and
// reports whether any habit changed.
func NormalizeHabits(habits activity.Habits, now time.Time) bool {
	today := timeutil.Day(now)
	changed := false
	for i := range habits {
		done := habits[i].LastCompleted == today
		if habits[i].CompletedToday != done {
			habits[i].CompletedToday = done
			changed = true
		}
	}
	return changed
}
