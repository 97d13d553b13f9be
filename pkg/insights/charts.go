package insights

import (
	"time"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

const (
	EnergyTrendDays  = 7
	ProductivityDays = 30
)

type MoodCount struct {
	Mood  activity.Mood `json:"mood"`
	Count int           `json:"count"`
}

// MoodDistribution counts every stored mood, best mood first. Moods with
// no entries are omitted.
func MoodDistribution(ms activity.Moods) []MoodCount {
	counts := map[activity.Mood]int{}
	for _, m := range ms {
		counts[m.Mood]++
	}
	var out []MoodCount
	for _, m := range activity.AllMoods() {
		if n := counts[m]; n > 0 {
			out = append(out, MoodCount{Mood: m, Count: n})
		}
	}
	return out
}

// EnergyPoint is one day of the energy trend. Level is nil on days without
// a sample.
type EnergyPoint struct {
	Day   string `json:"day"`
	Level *int   `json:"level"`
}

// EnergyTrend covers the last seven days, oldest first, and is nil when no
// energy has ever been logged.
func EnergyTrend(es activity.EnergyLog, now time.Time) []EnergyPoint {
	if len(es) == 0 {
		return nil
	}
	out := make([]EnergyPoint, 0, EnergyTrendDays)
	for _, d := range timeutil.LastDays(now, EnergyTrendDays) {
		p := EnergyPoint{Day: d}
		if e, ok := es.On(d); ok {
			level := e.Level
			p.Level = &level
		}
		out = append(out, p)
	}
	return out
}

// DailyCount is completed todos and habits for one day.
type DailyCount struct {
	Day    string `json:"day"`
	Tasks  int    `json:"tasks"`
	Habits int    `json:"habits"`
}

// Productivity covers the last thirty days, oldest first.
func Productivity(l activity.Log, now time.Time) []DailyCount {
	out := make([]DailyCount, 0, ProductivityDays)
	for _, d := range timeutil.LastDays(now, ProductivityDays) {
		c := DailyCount{Day: d, Habits: l.Habits.DoneOn(d)}
		for _, t := range l.Todos {
			if t.Completed && t.Day() == d {
				c.Tasks++
			}
		}
		out = append(out, c)
	}
	return out
}

type GoalProgress struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Percent int    `json:"percent"`
}

// ActiveGoals lists the progress of every goal not yet completed.
func ActiveGoals(goals goal.List, now time.Time) []GoalProgress {
	var out []GoalProgress
	for _, g := range goals.Filter(goal.FilterActive) {
		out = append(out, GoalProgress{ID: g.ID, Title: g.Title, Percent: g.Percentage(now)})
	}
	return out
}
