package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/store"
)

// Field is one independently persisted part of State.
type Field string

const (
	FieldTodos          Field = "todos"
	FieldHabits         Field = "habits"
	FieldJournalDraft   Field = "journal"
	FieldJournal        Field = "journalEntries"
	FieldMoods          Field = "moods"
	FieldEnergy         Field = "energyLevels"
	FieldGratitude      Field = "gratitudes"
	FieldXP             Field = "xp"
	FieldLevel          Field = "level"
	FieldLongestStreak  Field = "longestStreak"
	FieldCurrentStreak  Field = "currentStreak"
	FieldLastActiveDate Field = "lastActiveDate"
	FieldTheme          Field = "theme"
	FieldGoals          Field = "goals"
	FieldLastLogin      Field = "lastLogin"
)

// ProgressFields are the fields written after any XP or streak change.
var ProgressFields = []Field{FieldXP, FieldLevel, FieldLongestStreak, FieldCurrentStreak, FieldLastActiveDate}

// codec moves one field between State and JSON. reset restores the default.
type codec struct {
	get   func(s *State) any
	set   func(s *State, raw []byte) error
	reset func(s *State)
}

// decode leaves dst untouched when raw does not parse.
func decode[T any](raw []byte, dst *T) error {
	var v T
	if err := sonic.ConfigStd.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}

var codecs = map[Field]codec{
	FieldTodos: {
		get:   func(s *State) any { return s.Todos },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.Todos) },
		reset: func(s *State) { s.Todos = New().Todos },
	},
	FieldHabits: {
		get:   func(s *State) any { return s.Habits },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.Habits) },
		reset: func(s *State) { s.Habits = New().Habits },
	},
	FieldJournalDraft: {
		get:   func(s *State) any { return s.JournalDraft },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.JournalDraft) },
		reset: func(s *State) { s.JournalDraft = "" },
	},
	FieldJournal: {
		get:   func(s *State) any { return s.Journal },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.Journal) },
		reset: func(s *State) { s.Journal = New().Journal },
	},
	FieldMoods: {
		get:   func(s *State) any { return s.Moods },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.Moods) },
		reset: func(s *State) { s.Moods = New().Moods },
	},
	FieldEnergy: {
		get:   func(s *State) any { return s.Energy },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.Energy) },
		reset: func(s *State) { s.Energy = New().Energy },
	},
	FieldGratitude: {
		get:   func(s *State) any { return s.Gratitude },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.Gratitude) },
		reset: func(s *State) { s.Gratitude = New().Gratitude },
	},
	FieldXP: {
		get:   func(s *State) any { return s.Progress.XP },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.Progress.XP) },
		reset: func(s *State) { s.Progress.XP = 0 },
	},
	FieldLevel: {
		get:   func(s *State) any { return s.Progress.Level },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.Progress.Level) },
		reset: func(s *State) { s.Progress.Level = 1 },
	},
	FieldLongestStreak: {
		get:   func(s *State) any { return s.Progress.LongestStreak },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.Progress.LongestStreak) },
		reset: func(s *State) { s.Progress.LongestStreak = 0 },
	},
	FieldCurrentStreak: {
		get:   func(s *State) any { return s.Progress.CurrentStreak },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.Progress.CurrentStreak) },
		reset: func(s *State) { s.Progress.CurrentStreak = 0 },
	},
	FieldLastActiveDate: {
		get: func(s *State) any { return nullable(s.Progress.LastActiveDate) },
		set: func(s *State, raw []byte) error {
			var d *string
			if err := decode(raw, &d); err != nil {
				return err
			}
			s.Progress.LastActiveDate = deref(d)
			return nil
		},
		reset: func(s *State) { s.Progress.LastActiveDate = "" },
	},
	FieldTheme: {
		get: func(s *State) any { return s.Theme },
		set: func(s *State, raw []byte) error {
			var t Theme
			if err := decode(raw, &t); err != nil {
				return err
			}
			if !t.Valid() {
				return fmt.Errorf("unknown theme %q", t)
			}
			s.Theme = t
			return nil
		},
		reset: func(s *State) { s.Theme = DefaultTheme },
	},
	FieldGoals: {
		get: func(s *State) any { return s.Goals },
		set: func(s *State, raw []byte) error {
			var goals goal.List
			if err := decode(raw, &goals); err != nil {
				return err
			}
			if err := checkGoals(goals); err != nil {
				return err
			}
			s.Goals = goals
			return nil
		},
		reset: func(s *State) { s.Goals = New().Goals },
	},
	FieldLastLogin: {
		get:   func(s *State) any { return s.LastLogin },
		set:   func(s *State, raw []byte) error { return decode(raw, &s.LastLogin) },
		reset: func(s *State) { s.LastLogin = "" },
	},
}

// Carry copies fields from src into dst through their JSON form, so dst
// shares no slices with src.
func Carry(dst, src *State, fields ...Field) error {
	var errs []error
	for _, f := range fields {
		c, ok := codecs[f]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown field %q", f))
			continue
		}
		raw, err := sonic.ConfigStd.Marshal(c.get(src))
		if err == nil {
			err = c.set(dst, raw)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
		}
	}
	return errors.Join(errs...)
}

// AllFields lists every persisted field in load order.
func AllFields() []Field {
	return []Field{
		FieldTodos, FieldHabits, FieldJournalDraft, FieldJournal, FieldMoods,
		FieldEnergy, FieldGratitude, FieldXP, FieldLevel, FieldLongestStreak,
		FieldCurrentStreak, FieldLastActiveDate, FieldTheme, FieldGoals,
		FieldLastLogin,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Load reads every field independently. A missing field keeps its default;
// an unreadable or unparseable one keeps its default and is reported as a
// warning without stopping the others.
func Load(ctx context.Context, p store.Persistence, namespace string) (*State, []apperr.PersistenceWarning) {
	s := New()
	var warnings []apperr.PersistenceWarning
	for _, f := range AllFields() {
		key := store.Key(namespace, string(f))
		raw, err := p.Read(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			warnings = append(warnings, apperr.PersistenceWarning{Key: key, Op: "read", Err: err})
			continue
		}
		c := codecs[f]
		if err := c.set(s, []byte(raw)); err != nil {
			c.reset(s)
			warnings = append(warnings, apperr.PersistenceWarning{Key: key, Op: "decode", Err: err})
		}
	}
	normalize(s)
	return s, warnings
}

// normalize replaces JSON nulls and impossible counters with defaults.
func normalize(s *State) {
	d := New()
	if s.Todos == nil {
		s.Todos = d.Todos
	}
	if s.Habits == nil {
		s.Habits = d.Habits
	}
	if s.Journal == nil {
		s.Journal = d.Journal
	}
	if s.Moods == nil {
		s.Moods = d.Moods
	}
	if s.Energy == nil {
		s.Energy = d.Energy
	}
	if s.Gratitude == nil {
		s.Gratitude = d.Gratitude
	}
	if s.Goals == nil {
		s.Goals = d.Goals
	}
	if s.Progress.Level < 1 {
		s.Progress.Level = 1
	}
	if s.Progress.XP < 0 {
		s.Progress.XP = 0
	}
	if s.Theme == "" {
		s.Theme = DefaultTheme
	}
}

// Save writes the named fields. Each write is attempted even when an
// earlier one fails.
func Save(ctx context.Context, p store.Persistence, namespace string, s *State, fields ...Field) []apperr.PersistenceWarning {
	var warnings []apperr.PersistenceWarning
	for _, f := range fields {
		key := store.Key(namespace, string(f))
		c, ok := codecs[f]
		if !ok {
			warnings = append(warnings, apperr.PersistenceWarning{Key: key, Op: "encode", Err: fmt.Errorf("unknown field %q", f)})
			continue
		}
		raw, err := sonic.ConfigStd.Marshal(c.get(s))
		if err != nil {
			warnings = append(warnings, apperr.PersistenceWarning{Key: key, Op: "encode", Err: err})
			continue
		}
		if err := p.Write(ctx, key, string(raw)); err != nil {
			warnings = append(warnings, apperr.PersistenceWarning{Key: key, Op: "write", Err: err})
		}
	}
	return warnings
}

// Erase deletes every key of namespace, including keys written by other
// packages such as the quote cache.
func Erase(ctx context.Context, p store.Persistence, namespace string) error {
	keys, err := p.Keys(ctx, namespace+"_")
	if err != nil {
		return fmt.Errorf("state: erase: %w", err)
	}
	var errs []error
	for _, k := range keys {
		if err := p.Erase(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("state: erase: %w", errors.Join(errs...))
	}
	return nil
}
