package app

import (
	"context"
	"slices"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/events"
	"tableflip.dev/lyfocus/pkg/state"
	"tableflip.dev/lyfocus/pkg/streak"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// AddTodo creates an open todo.
func (s *Service) AddTodo(ctx context.Context, text string) (activity.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	t, err := s.st.Todos.Add(text, now)
	if err != nil {
		return activity.Todo{}, err
	}
	s.save(ctx, state.FieldTodos)
	return t, nil
}

// ToggleTodo flips a todo. Completing it pays XP and may extend the streak;
// reopening it pays nothing and takes nothing back.
func (s *Service) ToggleTodo(ctx context.Context, id int64) (activity.Todo, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	t, err := s.st.Todos.Toggle(id)
	if err != nil {
		return activity.Todo{}, Outcome{}, err
	}
	s.save(ctx, state.FieldTodos)
	var out Outcome
	if t.Completed {
		out.Award = s.award(ctx, events.ReasonTodoCompleted, now)
		s.recompute(ctx, now)
	}
	return t, out, nil
}

func (s *Service) DeleteTodo(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today(ctx)
	if err := s.st.Todos.Delete(id); err != nil {
		return err
	}
	s.save(ctx, state.FieldTodos)
	return nil
}

// Todos returns a copy of the todo list.
func (s *Service) Todos(ctx context.Context) activity.Todos {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today(ctx)
	return slices.Clone(s.st.Todos)
}

func (s *Service) AddHabit(ctx context.Context, name string) (activity.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	h, err := s.st.Habits.Add(name, now)
	if err != nil {
		return activity.Habit{}, err
	}
	s.save(ctx, state.FieldHabits)
	return h, nil
}

// CompleteHabit marks a habit done today. A second completion on the same
// day changes nothing and reports false.
func (s *Service) CompleteHabit(ctx context.Context, id int64) (activity.Habit, bool, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	i := s.st.Habits.Index(id)
	if i < 0 {
		return activity.Habit{}, false, Outcome{}, apperr.NotFound("habit", id)
	}
	h := &s.st.Habits[i]
	if !streak.CompleteHabit(h, now) {
		return *h, false, Outcome{}, nil
	}
	s.save(ctx, state.FieldHabits)
	out := Outcome{Award: s.award(ctx, events.ReasonHabitCompleted, now)}
	s.recompute(ctx, now)
	return s.st.Habits[i], true, out, nil
}

func (s *Service) DeleteHabit(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today(ctx)
	if err := s.st.Habits.Delete(id); err != nil {
		return err
	}
	s.save(ctx, state.FieldHabits)
	return nil
}

// Habits returns a copy of the habits, normalized for today.
func (s *Service) Habits(ctx context.Context) activity.Habits {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today(ctx)
	return slices.Clone(s.st.Habits)
}

// SaveJournal stores a new entry dated now and clears the draft.
func (s *Service) SaveJournal(ctx context.Context, text string) (activity.JournalEntry, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	e, err := s.st.Journal.Add(text, now)
	if err != nil {
		return activity.JournalEntry{}, Outcome{}, err
	}
	s.st.JournalDraft = ""
	s.save(ctx, state.FieldJournal, state.FieldJournalDraft)
	out := Outcome{Award: s.award(ctx, events.ReasonJournalSaved, now)}
	s.recompute(ctx, now)
	return e, out, nil
}

func (s *Service) UpdateJournal(ctx context.Context, id int64, text string) (activity.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	e, err := s.st.Journal.Update(id, text, now)
	if err != nil {
		return activity.JournalEntry{}, err
	}
	s.save(ctx, state.FieldJournal)
	return e, nil
}

func (s *Service) DeleteJournal(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today(ctx)
	if err := s.st.Journal.Delete(id); err != nil {
		return err
	}
	s.save(ctx, state.FieldJournal)
	return nil
}

// Journal returns a copy of the saved entries, oldest first.
func (s *Service) Journal(ctx context.Context) activity.Journal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today(ctx)
	return slices.Clone(s.st.Journal)
}

// RecentJournal returns the entries written in the last days calendar days,
// today included, oldest first. days < 1 returns every entry.
func (s *Service) RecentJournal(ctx context.Context, days int) activity.Journal {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	if days < 1 {
		return slices.Clone(s.st.Journal)
	}
	return s.st.Journal.Since(timeutil.StartOfDay(now).AddDate(0, 0, 1-days))
}

// SetJournalDraft keeps unsaved journal text between sessions.
func (s *Service) SetJournalDraft(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today(ctx)
	s.st.JournalDraft = text
	s.save(ctx, state.FieldJournalDraft)
}

func (s *Service) JournalDraft(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.JournalDraft
}

// LogMood records today's mood, replacing an earlier one from today.
func (s *Service) LogMood(ctx context.Context, mood activity.Mood) (activity.MoodEntry, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	e, err := s.st.Moods.Log(mood, now)
	if err != nil {
		return activity.MoodEntry{}, Outcome{}, err
	}
	s.save(ctx, state.FieldMoods)
	out := Outcome{Award: s.award(ctx, events.ReasonMoodLogged, now)}
	s.recompute(ctx, now)
	return e, out, nil
}

// LogEnergy records today's energy level. Energy alone does not make a day
// active, so the streak is left alone.
func (s *Service) LogEnergy(ctx context.Context, level int) (activity.EnergyEntry, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	e, err := s.st.Energy.Log(level, now)
	if err != nil {
		return activity.EnergyEntry{}, Outcome{}, err
	}
	s.save(ctx, state.FieldEnergy)
	return e, Outcome{Award: s.award(ctx, events.ReasonEnergyLogged, now)}, nil
}

func (s *Service) LogGratitude(ctx context.Context, items []string) (activity.GratitudeEntry, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	e, err := s.st.Gratitude.Log(items, now)
	if err != nil {
		return activity.GratitudeEntry{}, Outcome{}, err
	}
	s.save(ctx, state.FieldGratitude)
	return e, Outcome{Award: s.award(ctx, events.ReasonGratitude, now)}, nil
}

// SetTheme changes the dashboard theme.
func (s *Service) SetTheme(ctx context.Context, theme state.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !theme.Valid() {
		_, err := state.ParseTheme(string(theme))
		return err
	}
	s.st.Theme = theme
	s.save(ctx, state.FieldTheme)
	return nil
}

func (s *Service) Theme(ctx context.Context) state.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Theme
}
