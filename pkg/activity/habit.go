package activity

import (
	"strings"
	"time"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Habit is a recurring daily practice. LastCompleted is a calendar day or
// empty when the habit was never completed.
type Habit struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Streak         int       `json:"streak"`
	CompletedToday bool      `json:"completedToday"`
	LastCompleted  string    `json:"lastCompleted"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Habits []Habit

// Add appends a habit with no streak.
func (hs *Habits) Add(name string, now time.Time) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, apperr.Invalid("name", "required")
	}
	ids := make([]int64, len(*hs))
	for i, h := range *hs {
		ids[i] = h.ID
	}
	h := Habit{ID: timeutil.StampID(now, ids...), Name: name, CreatedAt: now}
	*hs = append(*hs, h)
	return h, nil
}

// Delete removes the habit.
func (hs *Habits) Delete(id int64) error {
	i := hs.Index(id)
	if i < 0 {
		return apperr.NotFound("habit", id)
	}
	*hs = append((*hs)[:i], (*hs)[i+1:]...)
	return nil
}

// Index returns the position of id or -1.
func (hs Habits) Index(id int64) int {
	for i, h := range hs {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// DoneOn counts habits whose last completion is day.
func (hs Habits) DoneOn(day string) int {
	n := 0
	for _, h := range hs {
		if h.LastCompleted == day {
			n++
		}
	}
	return n
}

// BestStreak is the largest per-habit streak.
func (hs Habits) BestStreak() int {
	best := 0
	for _, h := range hs {
		if h.Streak > best {
			best = h.Streak
		}
	}
	return best
}
