package insights

import (
	"math"
	"time"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// WeekdayCount is the number of completed todos created on a weekday.
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
}

// CompletedByWeekday groups completed todos by the weekday they were created
// on, in order of first appearance.
func CompletedByWeekday(todos activity.Todos) []WeekdayCount {
	var out []WeekdayCount
	idx := map[string]int{}
	for _, t := range todos {
		if !t.Completed {
			continue
		}
		wd := timeutil.Weekday(t.CreatedAt)
		i, ok := idx[wd]
		if !ok {
			i = len(out)
			idx[wd] = i
			out = append(out, WeekdayCount{Weekday: wd})
		}
		out[i].Count++
	}
	return out
}

// bestWeekday keeps the first weekday seen on ties.
func bestWeekday(counts []WeekdayCount) WeekdayCount {
	best := counts[0]
	for _, c := range counts[1:] {
		if c.Count > best.Count {
			best = c
		}
	}
	return best
}

// Performance is the lifetime todo scorecard.
type Performance struct {
	// BestDay is empty when nothing has been completed.
	BestDay        string  `json:"bestDay"`
	AvgPerDay      float64 `json:"avgPerDay"`
	CompletionRate int     `json:"completionRate"`
}

// PerformanceStats computes the scorecard. The per-day average spans from the
// first todo's creation to now, counting a partial day as a whole one.
func PerformanceStats(todos activity.Todos, now time.Time) Performance {
	var p Performance
	if counts := CompletedByWeekday(todos); len(counts) > 0 {
		p.BestDay = bestWeekday(counts).Weekday
	}
	if len(todos) == 0 {
		return p
	}
	completed := todos.Completed()
	p.CompletionRate = percent(completed, len(todos))

	days := int(math.Ceil(float64(now.Sub(todos[0].CreatedAt)) / float64(day)))
	if days > 0 {
		p.AvgPerDay = round1(float64(completed) / float64(days))
	}
	return p
}
