package goal

import (
	"math"
	"sort"
	"time"

	"tableflip.dev/lyfocus/pkg/timeutil"
)

// UrgentDays is the deadline horizon reported as urgent.
const UrgentDays = 7

// Goal is a tracked objective. CompletionAwarded records that the one-time
// completion bonus was paid so it is never paid twice.
type Goal struct {
	ID                  int64       `json:"id"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	Type                Type        `json:"type"`
	Target              int         `json:"target"`
	Unit                string      `json:"unit"`
	Deadline            string      `json:"deadline"`
	Category            Category    `json:"category"`
	CurrentProgress     float64     `json:"currentProgress"`
	Completed           bool        `json:"completed"`
	CompletionAwarded   bool        `json:"completionAwarded"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
	WeeklyTarget        int         `json:"weeklyTarget"`
	Milestones          []string    `json:"milestones"`
	CompletedMilestones []int       `json:"completedMilestones"`
	WeeklyProgress      []time.Time `json:"weeklyProgress"`
}

// Spec returns the editable fields of g.
func (g Goal) Spec() Spec {
	return Spec{
		Title:        g.Title,
		Description:  g.Description,
		Type:         g.Type,
		Target:       g.Target,
		Unit:         g.Unit,
		Deadline:     g.Deadline,
		Category:     g.Category,
		WeeklyTarget: g.WeeklyTarget,
		Milestones:   append([]string(nil), g.Milestones...),
	}
}

// Reached reports whether progress meets the target.
func (g Goal) Reached() bool {
	return g.Target > 0 && g.CurrentProgress >= float64(g.Target)
}

// WeekCount is the number of weekly sessions since the most recent Sunday.
func (g Goal) WeekCount(now time.Time) int {
	start := timeutil.StartOfWeek(now)
	n := 0
	for _, ts := range g.WeeklyProgress {
		if !ts.Before(start) {
			n++
		}
	}
	return n
}

// Percentage is the raw progress percentage, never negative and not capped
// at 100. Weekly goals report the current week against WeeklyTarget.
func (g Goal) Percentage(now time.Time) int {
	var cur, target float64
	switch g.Type {
	case TypeWeekly:
		cur, target = float64(g.WeekCount(now)), float64(g.WeeklyTarget)
	case TypeNumeric, TypeHabit, TypeDeadline, TypeYesNo, TypePercentage, TypeMilestone:
		cur, target = g.CurrentProgress, float64(g.Target)
	default:
		return 0
	}
	if target <= 0 {
		return 0
	}
	return int(math.Max(0, math.Round(100*cur/target)))
}

// BarPercentage is Percentage capped at 100 for progress bars.
func (g Goal) BarPercentage(now time.Time) int {
	return min(100, g.Percentage(now))
}

// DeadlineStatus classifies a goal deadline.
type DeadlineStatus string

const (
	DeadlineNone     DeadlineStatus = ""
	DeadlineUpcoming DeadlineStatus = "upcoming"
	DeadlineUrgent   DeadlineStatus = "urgent"
	DeadlineOverdue  DeadlineStatus = "overdue"
)

// DaysRemaining returns whole days until the deadline, rounded up, with its
// status. Goals without a parseable deadline return DeadlineNone.
func (g Goal) DaysRemaining(now time.Time) (int, DeadlineStatus) {
	if g.Deadline == "" {
		return 0, DeadlineNone
	}
	due, err := timeutil.ParseDay(g.Deadline)
	if err != nil {
		return 0, DeadlineNone
	}
	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return days, DeadlineOverdue
	case days <= UrgentDays:
		return days, DeadlineUrgent
	default:
		return days, DeadlineUpcoming
	}
}

// MilestoneDone reports whether milestone i is checked.
func (g Goal) MilestoneDone(i int) bool {
	for _, idx := range g.CompletedMilestones {
		if idx == i {
			return true
		}
	}
	return false
}

func (g *Goal) toggleMilestone(i int) bool {
	for k, idx := range g.CompletedMilestones {
		if idx == i {
			g.CompletedMilestones = append(g.CompletedMilestones[:k], g.CompletedMilestones[k+1:]...)
			return false
		}
	}
	g.CompletedMilestones = append(g.CompletedMilestones, i)
	sort.Ints(g.CompletedMilestones)
	return true
}

func (g Goal) clone() Goal {
	g.Milestones = append([]string(nil), g.Milestones...)
	g.CompletedMilestones = append([]int(nil), g.CompletedMilestones...)
	g.WeeklyProgress = append([]time.Time(nil), g.WeeklyProgress...)
	return g
}
