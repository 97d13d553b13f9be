package insights

import (
	"tableflip.dev/lyfocus/pkg/gamify"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Dashboard is the overview page header.
type Dashboard struct {
	OpenTodos       int                  `json:"openTodos"`
	HabitsDoneToday int                  `json:"habitsDoneToday"`
	HabitsTotal     int                  `json:"habitsTotal"`
	BestHabitStreak int                  `json:"bestHabitStreak"`
	CurrentStreak   int                  `json:"currentStreak"`
	LongestStreak   int                  `json:"longestStreak"`
	Level           gamify.LevelProgress `json:"level"`
}

// Overview computes the dashboard header for s.
func Overview(s Snapshot) Dashboard {
	return Dashboard{
		OpenTodos:       len(s.Log.Todos) - s.Log.Todos.Completed(),
		HabitsDoneToday: s.Log.Habits.DoneOn(timeutil.Day(s.Now)),
		HabitsTotal:     len(s.Log.Habits),
		BestHabitStreak: s.Log.Habits.BestStreak(),
		CurrentStreak:   s.Progress.CurrentStreak,
		LongestStreak:   s.Progress.LongestStreak,
		Level:           gamify.Progress(s.Progress.XP),
	}
}
