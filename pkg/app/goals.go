package app

import (
	"context"
	"time"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/events"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/state"
)

// goalStep runs one goal mutation and pays whatever it earned. op mutates
// s.st.Goals in place; on error nothing was changed.
func (s *Service) goalStep(ctx context.Context, op func(l *goal.List, now time.Time) (goal.Goal, events.Reason, error)) (goal.Goal, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	g, reason, err := op(&s.st.Goals, now)
	if err != nil {
		return goal.Goal{}, Outcome{}, err
	}
	s.save(ctx, state.FieldGoals)
	return g, Outcome{Award: s.award(ctx, reason, now)}, nil
}

// CreateGoal validates spec and adds a goal.
func (s *Service) CreateGoal(ctx context.Context, spec goal.Spec) (goal.Goal, Outcome, error) {
	return s.goalStep(ctx, func(l *goal.List, now time.Time) (goal.Goal, events.Reason, error) {
		return l.Create(spec, now)
	})
}

// UpdateGoal replaces the editable fields of a goal and keeps its progress.
func (s *Service) UpdateGoal(ctx context.Context, id int64, spec goal.Spec) (goal.Goal, Outcome, error) {
	return s.goalStep(ctx, func(l *goal.List, now time.Time) (goal.Goal, events.Reason, error) {
		return l.Update(id, spec, now)
	})
}

// IncrementProgress adds a positive amount to a goal's progress.
func (s *Service) IncrementProgress(ctx context.Context, id int64, amount float64) (goal.Goal, Outcome, error) {
	return s.goalStep(ctx, func(l *goal.List, now time.Time) (goal.Goal, events.Reason, error) {
		return l.IncrementProgress(id, amount, now)
	})
}

// ToggleGoalCompletion flips a goal's completed flag by hand.
func (s *Service) ToggleGoalCompletion(ctx context.Context, id int64) (goal.Goal, Outcome, error) {
	return s.goalStep(ctx, func(l *goal.List, now time.Time) (goal.Goal, events.Reason, error) {
		return l.ToggleCompletion(id, now)
	})
}

// RecordWeeklyProgress logs one session of a weekly goal now.
func (s *Service) RecordWeeklyProgress(ctx context.Context, id int64) (goal.Goal, Outcome, error) {
	return s.goalStep(ctx, func(l *goal.List, now time.Time) (goal.Goal, events.Reason, error) {
		return l.RecordWeeklyProgress(id, now)
	})
}

// ToggleMilestone checks or unchecks one milestone of a milestone goal.
func (s *Service) ToggleMilestone(ctx context.Context, id int64, index int) (goal.Goal, Outcome, error) {
	return s.goalStep(ctx, func(l *goal.List, now time.Time) (goal.Goal, events.Reason, error) {
		return l.ToggleMilestone(id, index, now)
	})
}

func (s *Service) DeleteGoal(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today(ctx)
	if err := s.st.Goals.Delete(id); err != nil {
		return err
	}
	s.save(ctx, state.FieldGoals)
	return nil
}

// Goal returns a copy of one goal.
func (s *Service) Goal(ctx context.Context, id int64) (goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.st.Goals.Get(id)
	if !ok {
		return goal.Goal{}, apperr.NotFound("goal", id)
	}
	return g, nil
}

// Goals lists the goals matching f.
func (s *Service) Goals(ctx context.Context, f goal.Filter) goal.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Goals.Filter(f)
}

func (s *Service) GoalStats(ctx context.Context) goal.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Goals.Stats()
}
