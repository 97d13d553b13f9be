package insights

import (
	"time"

	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Trend compares this week's completed todos with last week's.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Symbol is the arrow printed next to the count.
func (t Trend) Symbol() string {
	switch t {
	case TrendUp:
		return "↑"
	case TrendDown:
		return "↓"
	default:
		return "→"
	}
}

func trendOf(cur, prev int) Trend {
	switch {
	case cur > prev:
		return TrendUp
	case cur < prev:
		return TrendDown
	default:
		return TrendFlat
	}
}

// WeeklyReview summarizes the trailing seven days.
type WeeklyReview struct {
	TasksCompleted      int     `json:"tasksCompleted"`
	PrevTasksCompleted  int     `json:"prevTasksCompleted"`
	Trend               Trend   `json:"trend"`
	HabitConsistency    int     `json:"habitConsistency"`
	PositiveMoodPercent int     `json:"positiveMoodPercent"`
	AverageEnergy       float64 `json:"averageEnergy"`
	CurrentStreak       int     `json:"currentStreak"`
}

// Weekly returns nil unless there is at least one todo, one habit or three
// mood entries.
func Weekly(s Snapshot) *WeeklyReview {
	l := s.Log
	if len(l.Todos) == 0 && len(l.Habits) == 0 && len(l.Moods) < 3 {
		return nil
	}
	weekAgo := s.Now.Add(-7 * day)
	twoWeeksAgo := s.Now.Add(-14 * day)

	w := &WeeklyReview{CurrentStreak: s.Progress.CurrentStreak}
	for _, t := range l.Todos {
		if !t.Completed {
			continue
		}
		switch {
		case !t.CreatedAt.Before(weekAgo):
			w.TasksCompleted++
		case !t.CreatedAt.Before(twoWeeksAgo):
			w.PrevTasksCompleted++
		}
	}
	w.Trend = trendOf(w.TasksCompleted, w.PrevTasksCompleted)
	w.HabitConsistency = habitConsistency(s)

	weekStart := timeutil.DaysAgo(s.Now, 6)
	moods, positive := 0, 0
	for _, m := range l.Moods {
		if m.Date < weekStart {
			continue
		}
		moods++
		if m.Mood.Positive() {
			positive++
		}
	}
	w.PositiveMoodPercent = percent(positive, moods)

	samples, sum := 0, 0
	for _, e := range l.Energy {
		if e.Timestamp.Before(weekAgo) {
			continue
		}
		samples++
		sum += e.Level
	}
	if samples > 0 {
		w.AverageEnergy = round1(float64(sum) / float64(samples))
	}
	return w
}

// habitConsistency is the share of habit-days over the last seven calendar
// days that were completed. A habit's completed days are the run of Streak
// days ending at LastCompleted.
func habitConsistency(s Snapshot) int {
	habits := s.Log.Habits
	if len(habits) == 0 {
		return 0
	}
	window := timeutil.LastDays(s.Now, 7)
	first, last := window[0], window[len(window)-1]
	done := 0
	for _, h := range habits {
		if h.LastCompleted == "" || h.Streak <= 0 {
			continue
		}
		runStart := timeutil.AddDays(h.LastCompleted, -(h.Streak - 1))
		lo, hi := maxDay(runStart, first), minDay(h.LastCompleted, last)
		if lo > hi {
			continue
		}
		done += daysBetween(lo, hi) + 1
	}
	return percent(done, len(habits)*7)
}

func maxDay(a, b string) string {
	if a > b {
		return a
	}
	return b
}

func minDay(a, b string) string {
	if a < b {
		return a
	}
	return b
}

// daysBetween counts calendar days from a to b.
func daysBetween(a, b string) int {
	ta, err := timeutil.ParseDay(a)
	if err != nil {
		return 0
	}
	tb, err := timeutil.ParseDay(b)
	if err != nil {
		return 0
	}
	// Round absorbs DST shifts.
	return int((tb.Sub(ta) + 12*time.Hour) / day)
}
