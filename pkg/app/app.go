// Package app is the lyfocus session: it owns the state aggregate and runs
// every operation against it, persisting touched fields and paying awards.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/events"
	"tableflip.dev/lyfocus/pkg/gamify"
	"tableflip.dev/lyfocus/pkg/state"
	"tableflip.dev/lyfocus/pkg/store"
	"tableflip.dev/lyfocus/pkg/streak"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Options configures Open. Store is required; everything else has a default.
type Options struct {
	Store     store.Persistence
	Namespace string
	// Now is the clock; nil means time.Now.
	Now    func() time.Time
	Events events.Sink
	Logger *slog.Logger
}

// Service provides every lyfocus operation over one state aggregate. Calls
// are serialized, so CLIs, the MCP server and scheduled jobs can share one
// Service.
type Service struct {
	mu     sync.Mutex
	store  store.Persistence
	ns     string
	now    func() time.Time
	sink   events.Sink
	logger *slog.Logger
	st     *state.State
	// checked is the day the streak and login bonus were last evaluated.
	checked string
	// dirty holds fields whose last write failed.
	dirty map[state.Field]bool
}

// Open loads the state and starts a session: habits are normalized for
// today, the streak is recomputed and the daily login bonus is paid once
// per calendar day.
func Open(ctx context.Context, opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("app: no persistence configured")
	}
	s := &Service{
		store:  opts.Store,
		ns:     opts.Namespace,
		now:    opts.Now,
		sink:   opts.Events,
		logger: opts.Logger,
		dirty:  map[state.Field]bool{},
	}
	if s.ns == "" {
		s.ns = "lyfocus"
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.sink == nil {
		s.sink = events.Discard
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)
	s.today(ctx)
	return s, nil
}

// Namespace is the key prefix the session persists under.
func (s *Service) Namespace() string { return s.ns }

// Reload re-reads the state from the store, for example after another
// process wrote to it. Fields whose last write failed keep their in-memory
// value and are written again.
func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.pending()
	mem := s.st
	s.load(ctx)
	if len(pending) > 0 {
		if err := state.Carry(s.st, mem, pending...); err != nil {
			s.logger.WarnContext(ctx, "unsaved changes lost", slog.Any("error", err))
		}
		s.save(ctx, pending...)
	}
	s.today(ctx)
}

// pending lists the dirty fields in load order.
func (s *Service) pending() []state.Field {
	var out []state.Field
	for _, f := range state.AllFields() {
		if s.dirty[f] {
			out = append(out, f)
		}
	}
	return out
}

func (s *Service) load(ctx context.Context) {
	st, warnings := state.Load(ctx, s.store, s.ns)
	s.warn(ctx, warnings)
	s.st = st
}

// today is the "normalize for today" step every operation starts with. It
// returns the clock reading the operation should use. The first call of each
// calendar day also recomputes the streak and pays the daily login bonus, so
// a long-running session notices midnight.
func (s *Service) today(ctx context.Context) time.Time {
	now := s.now()
	if streak.NormalizeHabits(s.st.Habits, now) {
		s.save(ctx, state.FieldHabits)
	}
	if day := timeutil.Day(now); day != s.checked {
		s.checked = day
		s.recompute(ctx, now)
		if gamify.CheckDailyLogin(&s.st.LastLogin, now) {
			s.award(ctx, events.ReasonDailyLogin, now)
			s.save(ctx, state.FieldLastLogin)
		}
	}
	return now
}

// recompute re-evaluates the global streak and persists it when it moved.
func (s *Service) recompute(ctx context.Context, now time.Time) {
	change := streak.RecomputeFromLog(&s.st.Progress, s.st.Log(), now)
	if change == streak.Unchanged {
		return
	}
	ev := events.New(events.KindStreak, now)
	ev.Streak = s.st.Progress.CurrentStreak
	ev.TotalXP = s.st.Progress.XP
	ev.Level = s.st.Progress.Level
	s.publish(ctx, ev)
	s.save(ctx, state.ProgressFields...)
}

// award pays reason, publishes the resulting events and persists progress.
// An empty reason pays nothing.
func (s *Service) award(ctx context.Context, reason events.Reason, now time.Time) *gamify.Result {
	if reason == "" {
		return nil
	}
	r, ok := gamify.Award(&s.st.Progress, reason)
	if !ok {
		return nil
	}
	for _, ev := range r.Events(s.st.Progress, now) {
		s.publish(ctx, ev)
	}
	s.save(ctx, state.ProgressFields...)
	return &r
}

func (s *Service) publish(ctx context.Context, ev events.Event) {
	if err := s.sink.Publish(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "event not delivered",
			slog.String("kind", string(ev.Kind)),
			slog.Any("error", err))
	}
}

func (s *Service) save(ctx context.Context, fields ...state.Field) {
	warnings := state.Save(ctx, s.store, s.ns, s.st, fields...)
	failed := make(map[string]bool, len(warnings))
	for _, w := range warnings {
		failed[w.Key] = true
	}
	for _, f := range fields {
		if failed[store.Key(s.ns, string(f))] {
			s.dirty[f] = true
		} else {
			delete(s.dirty, f)
		}
	}
	s.warn(ctx, warnings)
}

func (s *Service) warn(ctx context.Context, warnings []apperr.PersistenceWarning) {
	for _, w := range warnings {
		s.logger.WarnContext(ctx, "persistence",
			slog.String("op", w.Op),
			slog.String("key", w.Key),
			slog.Any("error", w.Err))
	}
}

// Outcome is returned by operations that may pay XP.
type Outcome struct {
	Award *gamify.Result `json:"award,omitempty"`
}

// LeveledUp reports whether the operation crossed a level threshold.
func (o Outcome) LeveledUp() bool {
	return o.Award != nil && o.Award.LeveledUp
}
