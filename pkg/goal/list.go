package goal

import (
	"time"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/events"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// List is the goal set. Every mutating method either applies fully and
// returns the award reason it earned, or returns an error and leaves the
// list untouched.
type List []Goal

// Create validates spec and appends a new goal.
func (l *List) Create(spec Spec, now time.Time) (Goal, events.Reason, error) {
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		return Goal{}, "", err
	}
	if spec.Category == "" {
		spec.Category = CategoryOther
	}
	ids := make([]int64, len(*l))
	for i, g := range *l {
		ids[i] = g.ID
	}
	g := Goal{
		ID:        timeutil.StampID(now, ids...),
		CreatedAt: now,
	}
	g.apply(spec, now)
	*l = append(*l, g)
	return g.clone(), events.ReasonGoalCreated, nil
}

// Update re-validates spec and replaces the editable fields of goal id.
// Progress, checked milestones and weekly sessions carry over; completion
// is re-derived from progress.
func (l List) Update(id int64, spec Spec, now time.Time) (Goal, events.Reason, error) {
	i := l.index(id)
	if i < 0 {
		return Goal{}, "", apperr.NotFound("goal", id)
	}
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		return Goal{}, "", err
	}
	if spec.Category == "" {
		spec.Category = CategoryOther
	}
	g := l[i].clone()
	g.apply(spec, now)
	if g.Type == TypeMilestone {
		kept := g.CompletedMilestones[:0]
		for _, idx := range g.CompletedMilestones {
			if idx < len(g.Milestones) {
				kept = append(kept, idx)
			}
		}
		g.CompletedMilestones = kept
		g.CurrentProgress = float64(len(kept))
	}
	if g.Type == TypeWeekly {
		g.CurrentProgress = float64(len(g.WeeklyProgress))
	}
	g.Completed = g.Reached()
	l[i] = g
	return g.clone(), events.ReasonGoalUpdated, nil
}

// IncrementProgress adds amount to the goal's progress. Crossing the target
// completes the goal and earns the completion bonus once per goal. Weekly
// and milestone goals derive their progress from sessions and milestones
// and are rejected.
func (l List) IncrementProgress(id int64, amount float64, now time.Time) (Goal, events.Reason, error) {
	if amount <= 0 {
		return Goal{}, "", apperr.Invalid("amount", "must be greater than zero")
	}
	i := l.index(id)
	if i < 0 {
		return Goal{}, "", apperr.NotFound("goal", id)
	}
	g := &l[i]
	switch g.Type {
	case TypeWeekly:
		return Goal{}, "", apperr.Invalid("type", "weekly goals progress by recorded sessions")
	case TypeMilestone:
		return Goal{}, "", apperr.Invalid("type", "milestone goals progress by checked milestones")
	}
	g.CurrentProgress += amount
	g.UpdatedAt = now
	reason := g.settle()
	return g.clone(), reason, nil
}

// ToggleCompletion flips the completed flag regardless of progress.
// Marking a goal complete pays the completion bonus only if it was never
// paid for this goal.
func (l List) ToggleCompletion(id int64, now time.Time) (Goal, events.Reason, error) {
	i := l.index(id)
	if i < 0 {
		return Goal{}, "", apperr.NotFound("goal", id)
	}
	g := &l[i]
	g.Completed = !g.Completed
	g.UpdatedAt = now
	var reason events.Reason
	if g.Completed && !g.CompletionAwarded {
		g.CompletionAwarded = true
		reason = events.ReasonGoalCompleted
	}
	return g.clone(), reason, nil
}

// RecordWeeklyProgress logs one session of a weekly goal at ts.
func (l List) RecordWeeklyProgress(id int64, ts time.Time) (Goal, events.Reason, error) {
	i := l.index(id)
	if i < 0 {
		return Goal{}, "", apperr.NotFound("goal", id)
	}
	g := &l[i]
	if g.Type != TypeWeekly {
		return Goal{}, "", apperr.Invalid("type", "weekly progress applies to weekly goals only")
	}
	g.WeeklyProgress = append(g.WeeklyProgress, ts)
	g.CurrentProgress = float64(len(g.WeeklyProgress))
	g.UpdatedAt = ts
	reason := g.settle()
	return g.clone(), reason, nil
}

// ToggleMilestone checks or unchecks milestone index of a milestone goal.
// Checking earns a progress award, or the completion bonus when it
// completes the checklist; unchecking earns nothing.
func (l List) ToggleMilestone(id int64, index int, now time.Time) (Goal, events.Reason, error) {
	i := l.index(id)
	if i < 0 {
		return Goal{}, "", apperr.NotFound("goal", id)
	}
	g := &l[i]
	if g.Type != TypeMilestone {
		return Goal{}, "", apperr.Invalid("type", "milestones apply to milestone goals only")
	}
	if index < 0 || index >= len(g.Milestones) {
		return Goal{}, "", apperr.Invalid("index", "no such milestone")
	}
	checked := g.toggleMilestone(index)
	g.CurrentProgress = float64(len(g.CompletedMilestones))
	g.UpdatedAt = now
	if !checked {
		g.Completed = g.Reached()
		return g.clone(), "", nil
	}
	reason := g.settle()
	return g.clone(), reason, nil
}

// Delete removes goal id.
func (l *List) Delete(id int64) error {
	i := l.index(id)
	if i < 0 {
		return apperr.NotFound("goal", id)
	}
	*l = append((*l)[:i], (*l)[i+1:]...)
	return nil
}

// Get returns a copy of goal id.
func (l List) Get(id int64) (Goal, bool) {
	if i := l.index(id); i >= 0 {
		return l[i].clone(), true
	}
	return Goal{}, false
}

// Filter selects which goals a listing shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filter returns copies of the goals matching f.
func (l List) Filter(f Filter) List {
	out := make(List, 0, len(l))
	for _, g := range l {
		switch f {
		case FilterActive:
			if g.Completed {
				continue
			}
		case FilterCompleted:
			if !g.Completed {
				continue
			}
		}
		out = append(out, g.clone())
	}
	return out
}

// Stats counts goals by state.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

func (l List) Stats() Stats {
	s := Stats{Total: len(l)}
	for _, g := range l {
		if g.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	return s
}

// apply copies spec onto g and resolves the type's target.
func (g *Goal) apply(spec Spec, now time.Time) {
	g.Title = spec.Title
	g.Description = spec.Description
	g.Type = spec.Type
	g.Target = resolveTarget(spec)
	g.Unit = spec.Unit
	g.Deadline = spec.Deadline
	g.Category = spec.Category
	g.WeeklyTarget = 0
	if spec.Type == TypeWeekly {
		g.WeeklyTarget = spec.WeeklyTarget
	}
	g.Milestones = nil
	if spec.Type == TypeMilestone {
		g.Milestones = append([]string(nil), spec.Milestones...)
	}
	g.UpdatedAt = now
}

// settle completes the goal when progress reaches the target and returns
// the award earned by the progress step.
func (g *Goal) settle() events.Reason {
	if g.Reached() && !g.Completed {
		g.Completed = true
		if !g.CompletionAwarded {
			g.CompletionAwarded = true
			return events.ReasonGoalCompleted
		}
	}
	return events.ReasonGoalProgress
}

func (l List) index(id int64) int {
	for i, g := range l {
		if g.ID == id {
			return i
		}
	}
	return -1
}
