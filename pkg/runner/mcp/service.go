// Package mcp exposes lyfocus over the Model Context Protocol.
package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/gamify"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/insights"
	"tableflip.dev/lyfocus/pkg/progress"
	"tableflip.dev/lyfocus/pkg/state"
)

// Service adapts the session to MCP argument and result shapes. The session
// serializes every call, so tools may run concurrently.
type Service struct {
	App *app.Service
}

// NewService wraps a session.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// Mutation is the result of a tool that changes state.
type Mutation struct {
	Item  any            `json:"item,omitempty"`
	Award *gamify.Result `json:"award,omitempty"`
}

func mutation(item any, o app.Outcome) Mutation {
	return Mutation{Item: item, Award: o.Award}
}

// StateView is the full read-only state.
type StateView struct {
	Todos        activity.Todos        `json:"todos"`
	Habits       activity.Habits       `json:"habits"`
	Journal      activity.Journal      `json:"journalEntries"`
	JournalDraft string                `json:"journalDraft,omitempty"`
	Moods        activity.Moods        `json:"moods"`
	Energy       activity.EnergyLog    `json:"energyLevels"`
	Gratitude    activity.Gratitudes   `json:"gratitudes"`
	Goals        goal.List             `json:"goals"`
	Progress     progress.UserProgress `json:"progress"`
	Level        gamify.LevelProgress  `json:"level"`
	Theme        state.Theme           `json:"theme"`
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return errors.New("session is not configured")
	}
	return nil
}

// State returns every record.
func (s *Service) State(ctx context.Context) (StateView, error) {
	if err := s.ready(); err != nil {
		return StateView{}, err
	}
	snap := s.App.Snapshot(ctx)
	return StateView{
		Todos:        snap.Log.Todos,
		Habits:       snap.Log.Habits,
		Journal:      snap.Log.Journal,
		JournalDraft: s.App.JournalDraft(ctx),
		Moods:        snap.Log.Moods,
		Energy:       snap.Log.Energy,
		Gratitude:    snap.Log.Gratitude,
		Goals:        snap.Goals,
		Progress:     snap.Progress,
		Level:        gamify.Progress(snap.Progress.XP),
		Theme:        s.App.Theme(ctx),
	}, nil
}

// Insights builds the report, with the heatmap over days when days > 0.
func (s *Service) Insights(ctx context.Context, days int) (insights.Report, error) {
	if err := s.ready(); err != nil {
		return insights.Report{}, err
	}
	snap := s.App.Snapshot(ctx)
	r := insights.Build(snap)
	if days > 0 && days != insights.HeatmapDays {
		r.Heatmap = insights.HeatmapFor(snap.Log, snap.Now, days)
	}
	return r, nil
}

// Export returns the backup envelope as JSON and pays the backup award.
func (s *Service) Export(ctx context.Context) (string, app.Outcome, error) {
	if err := s.ready(); err != nil {
		return "", app.Outcome{}, err
	}
	var buf bytes.Buffer
	o, err := s.App.Export(ctx, &buf)
	if err != nil {
		return "", app.Outcome{}, err
	}
	return buf.String(), o, nil
}

// GoalView is one goal with its derived progress.
type GoalView struct {
	Goal          goal.Goal           `json:"goal"`
	Percentage    int                 `json:"percentage"`
	WeekCount     int                 `json:"weekCount,omitempty"`
	DaysRemaining *int                `json:"daysRemaining,omitempty"`
	Deadline      goal.DeadlineStatus `json:"deadlineStatus,omitempty"`
}

// GoalDetail looks up a goal by its id as written in a resource URI.
func (s *Service) GoalDetail(ctx context.Context, raw string) (GoalView, error) {
	if err := s.ready(); err != nil {
		return GoalView{}, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return GoalView{}, apperr.Invalid("id", fmt.Sprintf("not a goal id: %q", raw))
	}
	g, err := s.App.Goal(ctx, id)
	if err != nil {
		return GoalView{}, err
	}
	now := s.App.Snapshot(ctx).Now
	v := GoalView{Goal: g, Percentage: g.Percentage(now)}
	if g.Type == goal.TypeWeekly {
		v.WeekCount = g.WeekCount(now)
	}
	if days, status := g.DaysRemaining(now); status != goal.DeadlineNone {
		v.DaysRemaining, v.Deadline = &days, status
	}
	return v, nil
}

// ID converts a JSON number argument to an item id.
func ID(raw float64) (int64, error) {
	if raw <= 0 || raw != math.Trunc(raw) {
		return 0, apperr.Invalid("id", "must be a positive whole number")
	}
	return int64(raw), nil
}
