// Package state holds the lyfocus state aggregate and converts it to and
// from its persisted and exported forms.
package state

import (
	"fmt"
	"strings"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/progress"
)

// Theme is a dashboard colour scheme.
type Theme string

const (
	ThemeLight    Theme = "light"
	ThemeDark     Theme = "dark"
	ThemeOcean    Theme = "ocean"
	ThemeSunset   Theme = "sunset"
	ThemeMidnight Theme = "midnight"
	ThemeGalaxy   Theme = "galaxy"
	ThemeGlass    Theme = "glass"
)

// DefaultTheme is used on first run and when a stored theme is unknown.
const DefaultTheme = ThemeLight

func AllThemes() []Theme {
	return []Theme{ThemeLight, ThemeDark, ThemeOcean, ThemeSunset, ThemeMidnight, ThemeGalaxy, ThemeGlass}
}

func (t Theme) Valid() bool {
	for _, c := range AllThemes() {
		if c == t {
			return true
		}
	}
	return false
}

// ParseTheme converts user input to a Theme.
func ParseTheme(raw string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", apperr.Invalid("theme", fmt.Sprintf("unknown theme %q", raw))
	}
	return t, nil
}

// State is the whole user dataset. It is owned by one app.Service and only
// changed through its operations.
type State struct {
	Todos        activity.Todos
	Habits       activity.Habits
	JournalDraft string
	Journal      activity.Journal
	Moods        activity.Moods
	Energy       activity.EnergyLog
	Gratitude    activity.Gratitudes
	Goals        goal.List
	Progress     progress.UserProgress
	Theme        Theme
	// LastLogin is the calendar day of the last daily-login award.
	LastLogin string
}

// New returns the fresh-install state.
func New() *State {
	return &State{
		Todos:     activity.Todos{},
		Habits:    activity.Habits{},
		Journal:   activity.Journal{},
		Moods:     activity.Moods{},
		Energy:    activity.EnergyLog{},
		Gratitude: activity.Gratitudes{},
		Goals:     goal.List{},
		Progress:  progress.New(),
		Theme:     DefaultTheme,
	}
}

// Log is a read-only view of the activity collections.
func (s *State) Log() activity.Log {
	return activity.Log{
		Todos:     s.Todos,
		Habits:    s.Habits,
		Journal:   s.Journal,
		Moods:     s.Moods,
		Energy:    s.Energy,
		Gratitude: s.Gratitude,
	}
}

// checkGoals rejects goals no operation could handle.
func checkGoals(goals goal.List) error {
	for _, g := range goals {
		if !g.Type.Valid() {
			return fmt.Errorf("goal %d has unknown type %q", g.ID, g.Type)
		}
	}
	return nil
}
