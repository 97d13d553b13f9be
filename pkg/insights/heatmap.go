package insights

import (
	"time"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// HeatmapDays is the trailing window covered by the heatmap.
const HeatmapDays = 28

// Cell is one heatmap day.
type Cell struct {
	Day   string `json:"day"`
	Score int    `json:"score"`
	Level int    `json:"level"`
}

// Heatmap holds HeatmapDays cells, oldest first.
type Heatmap struct {
	Cells []Cell `json:"cells"`
}

// HeatLevel buckets an activity score into 0..4.
func HeatLevel(score int) int {
	switch {
	case score >= 8:
		return 4
	case score >= 6:
		return 3
	case score >= 4:
		return 2
	case score >= 1:
		return 1
	}
	return 0
}

// DayScore weighs one calendar day of activity.
func DayScore(l activity.Log, d string) int {
	score := 0
	for _, t := range l.Todos {
		if t.Completed && t.Day() == d {
			score++
		}
	}
	score += l.Habits.DoneOn(d)
	for _, j := range l.Journal {
		if j.Day() == d {
			score += 2
			break
		}
	}
	if _, ok := l.Moods.On(d); ok {
		score++
	}
	if _, ok := l.Energy.On(d); ok {
		score++
	}
	return score
}

// BuildHeatmap covers the default window. It returns nil when every day
// scores zero.
func BuildHeatmap(l activity.Log, now time.Time) *Heatmap {
	return HeatmapFor(l, now, HeatmapDays)
}

// HeatmapFor covers the trailing days ending at now.
func HeatmapFor(l activity.Log, now time.Time, days int) *Heatmap {
	if days <= 0 {
		days = HeatmapDays
	}
	h := &Heatmap{Cells: make([]Cell, 0, days)}
	active := false
	for _, d := range timeutil.LastDays(now, days) {
		score := DayScore(l, d)
		if score > 0 {
			active = true
		}
		h.Cells = append(h.Cells, Cell{Day: d, Score: score, Level: HeatLevel(score)})
	}
	if !active {
		return nil
	}
	return h
}
