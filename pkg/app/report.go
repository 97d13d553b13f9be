package app

import (
	"context"
	"slices"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/gamify"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/insights"
	"tableflip.dev/lyfocus/pkg/progress"
	"tableflip.dev/lyfocus/pkg/state"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Snapshot returns a read-only copy of the state for the insights engine.
func (s *Service) Snapshot(ctx context.Context) insights.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(ctx)
}

func (s *Service) snapshot(ctx context.Context) insights.Snapshot {
	now := s.today(ctx)
	l := s.st.Log()
	return insights.Snapshot{
		Log: activity.Log{
			Todos:     slices.Clone(l.Todos),
			Habits:    slices.Clone(l.Habits),
			Journal:   slices.Clone(l.Journal),
			Moods:     slices.Clone(l.Moods),
			Energy:    slices.Clone(l.Energy),
			Gratitude: slices.Clone(l.Gratitude),
		},
		Goals:    s.st.Goals.Filter(goal.FilterAll),
		Progress: s.st.Progress,
		Now:      now,
	}
}

// Insights computes the full analytics report.
func (s *Service) Insights(ctx context.Context) insights.Report {
	return insights.Build(s.Snapshot(ctx))
}

// Dashboard computes the overview numbers.
func (s *Service) Dashboard(ctx context.Context) insights.Dashboard {
	return insights.Overview(s.Snapshot(ctx))
}

// Status is the compact session summary shown by the status command.
type Status struct {
	Today    string                  `json:"today"`
	Theme    state.Theme             `json:"theme"`
	Progress progress.UserProgress   `json:"progress"`
	Level    gamify.LevelProgress    `json:"level"`
	Summary  insights.Summary        `json:"summary"`
	Board    insights.Dashboard      `json:"dashboard"`
	Goals    []insights.GoalProgress `json:"goals"`
}

func (s *Service) Status(ctx context.Context) Status {
	s.mu.Lock()
	snap := s.snapshot(ctx)
	theme := s.st.Theme
	s.mu.Unlock()
	return Status{
		Today:    timeutil.Day(snap.Now),
		Theme:    theme,
		Progress: snap.Progress,
		Level:    gamify.Progress(snap.Progress.XP),
		Summary:  insights.Summarize(snap),
		Board:    insights.Overview(snap),
		Goals:    insights.ActiveGoals(snap.Goals, snap.Now),
	}
}

// Heatmap scores the last days calendar days.
func (s *Service) Heatmap(ctx context.Context, days int) *insights.Heatmap {
	snap := s.Snapshot(ctx)
	return insights.HeatmapFor(snap.Log, snap.Now, days)
}
