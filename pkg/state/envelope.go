package state

import (
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/progress"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// EnvelopeVersion is written by Export and required, in any value, by Decode.
const EnvelopeVersion = "1.0"

// Envelope is the backup file format.
type Envelope struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Data       *Data     `json:"data"`
}

// Data is the exported part of State. The journal draft, current page and
// last login day are not exported.
type Data struct {
	Todos          activity.Todos      `json:"todos"`
	Habits         activity.Habits     `json:"habits"`
	JournalEntries activity.Journal    `json:"journalEntries"`
	Moods          activity.Moods      `json:"moods"`
	EnergyLevels   activity.EnergyLog  `json:"energyLevels"`
	Gratitudes     activity.Gratitudes `json:"gratitudes"`
	Goals          goal.List           `json:"goals"`
	XP             int                 `json:"xp"`
	Level          int                 `json:"level"`
	LongestStreak  int                 `json:"longestStreak"`
	CurrentStreak  int                 `json:"currentStreak"`
	LastActiveDate *string             `json:"lastActiveDate"`
	Theme          Theme               `json:"theme"`
}

// ImportedFields are the fields Apply replaces.
var ImportedFields = []Field{
	FieldTodos, FieldHabits, FieldJournal, FieldMoods, FieldEnergy, FieldGratitude,
	FieldGoals, FieldXP, FieldLevel, FieldLongestStreak, FieldCurrentStreak,
	FieldLastActiveDate, FieldTheme,
}

// Export captures s as an Envelope.
func Export(s *State, now time.Time) Envelope {
	return Envelope{
		Version:    EnvelopeVersion,
		ExportDate: now.UTC(),
		Data: &Data{
			Todos:          s.Todos,
			Habits:         s.Habits,
			JournalEntries: s.Journal,
			Moods:          s.Moods,
			EnergyLevels:   s.Energy,
			Gratitudes:     s.Gratitude,
			Goals:          s.Goals,
			XP:             s.Progress.XP,
			Level:          s.Progress.Level,
			LongestStreak:  s.Progress.LongestStreak,
			CurrentStreak:  s.Progress.CurrentStreak,
			LastActiveDate: nullable(s.Progress.LastActiveDate),
			Theme:          s.Theme,
		},
	}
}

// BackupName is the file name used for an export made at now.
func BackupName(now time.Time) string {
	return fmt.Sprintf("lyfocus-backup-%s.json", timeutil.Day(now))
}

// Encode writes env as indented JSON.
func Encode(w io.Writer, env Envelope) error {
	b, err := sonic.ConfigStd.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("state: encode backup: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("state: write backup: %w", err)
	}
	return nil
}

// Decode parses a backup. Malformed JSON, a missing version or missing data
// are reported as *apperr.FormatError.
func Decode(r io.Reader) (Envelope, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Envelope{}, &apperr.FormatError{Reason: "read", Err: err}
	}
	var env Envelope
	if err := sonic.ConfigStd.Unmarshal(raw, &env); err != nil {
		return Envelope{}, &apperr.FormatError{Reason: "malformed JSON", Err: err}
	}
	switch {
	case env.Version == "":
		return Envelope{}, &apperr.FormatError{Reason: "missing version"}
	case env.Data == nil:
		return Envelope{}, &apperr.FormatError{Reason: "missing data"}
	}
	if err := checkGoals(env.Data.Goals); err != nil {
		return Envelope{}, &apperr.FormatError{Reason: "goals", Err: err}
	}
	return env, nil
}

// Apply replaces every exported field of s with env's data. Absent values
// fall back to the fresh-install defaults; fields outside the envelope are
// left alone.
func (env Envelope) Apply(s *State) {
	d := env.Data
	if d == nil {
		return
	}
	s.Todos = d.Todos
	s.Habits = d.Habits
	s.Journal = d.JournalEntries
	s.Moods = d.Moods
	s.Energy = d.EnergyLevels
	s.Gratitude = d.Gratitudes
	s.Goals = d.Goals
	s.Progress = progress.UserProgress{
		XP:             d.XP,
		Level:          d.Level,
		LongestStreak:  d.LongestStreak,
		CurrentStreak:  d.CurrentStreak,
		LastActiveDate: deref(d.LastActiveDate),
	}
	s.Theme = d.Theme
	if !s.Theme.Valid() {
		s.Theme = DefaultTheme
	}
	normalize(s)
}
