// Package events carries the award and level-up notifications produced by
// state operations and delivers them to pluggable sinks.
package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Reason names why experience points were awarded.
type Reason string

const (
	ReasonTodoCompleted  Reason = "todo_completed"
	ReasonHabitCompleted Reason = "habit_completed"
	ReasonJournalSaved   Reason = "journal_saved"
	ReasonMoodLogged     Reason = "mood_logged"
	ReasonEnergyLogged   Reason = "energy_logged"
	ReasonGratitude      Reason = "gratitude_logged"
	ReasonDailyLogin     Reason = "daily_login"
	ReasonGoalCreated    Reason = "goal_created"
	ReasonGoalUpdated    Reason = "goal_updated"
	ReasonGoalProgress   Reason = "goal_progress"
	ReasonGoalCompleted  Reason = "goal_completed"
	ReasonDataBackup     Reason = "data_backup"
)

// Kind classifies an Event.
type Kind string

const (
	KindXPAwarded Kind = "xp.awarded"
	KindLevelUp   Kind = "level.up"
	KindStreak    Kind = "streak.updated"
	KindReset     Kind = "data.reset"
)

// Event is one notification. Fields not relevant to the Kind stay zero.
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Reason     Reason    `json:"reason,omitempty"`
	XP         int       `json:"xp,omitempty"`
	TotalXP    int       `json:"totalXp"`
	Level      int       `json:"level"`
	LevelTitle string    `json:"levelTitle,omitempty"`
	Streak     int       `json:"streak,omitempty"`
	At         time.Time `json:"at"`
}

// New stamps an event with a fresh id.
func New(kind Kind, at time.Time) Event {
	return Event{ID: uuid.NewString(), Kind: kind, At: at}
}

// Sink receives events. Publish failures never undo the state change that
// produced the event.
type Sink interface {
	Publish(ctx context.Context, ev Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, ev Event) error

func (f SinkFunc) Publish(ctx context.Context, ev Event) error { return f(ctx, ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(context.Context, Event) error { return nil })

type multi []Sink

// Multi fans an event out to every sink and joins their errors.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSink writes events to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

func (l LogSink) Publish(ctx context.Context, ev Event) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(ctx, slog.LevelInfo, string(ev.Kind),
		slog.String("id", ev.ID),
		slog.String("reason", string(ev.Reason)),
		slog.Int("xp", ev.XP),
		slog.Int("total_xp", ev.TotalXP),
		slog.Int("level", ev.Level),
		slog.Int("streak", ev.Streak),
	)
	return nil
}

// Recorder keeps every published event in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.Events = append(r.Events, ev)
	return nil
}

// Kinds lists the recorded event kinds in order.
func (r *Recorder) Kinds() []Kind {
	out := make([]Kind, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Kind
	}
	return out
}
