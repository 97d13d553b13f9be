package activity

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Trailing windows kept on write.
const (
	MoodWindow      = 30
	EnergyWindow    = 30
	GratitudeWindow = 90
	MaxGratitude    = 3
	MaxEnergy       = 10
)

// Mood is the self-reported mood of a day.
type Mood string

const (
	MoodAmazing  Mood = "amazing"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodBad      Mood = "bad"
	MoodTerrible Mood = "terrible"
)

// AllMoods lists moods from best to worst.
func AllMoods() []Mood {
	return []Mood{MoodAmazing, MoodGood, MoodOkay, MoodBad, MoodTerrible}
}

// ParseMood converts user input to a Mood.
func ParseMood(raw string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllMoods() {
		if candidate == m {
			return m, nil
		}
	}
	return "", apperr.Invalid("mood", fmt.Sprintf("unknown mood %q", raw))
}

// Score maps amazing..terrible to 5..1. Unknown moods score 0.
func (m Mood) Score() int {
	switch m {
	case MoodAmazing:
		return 5
	case MoodGood:
		return 4
	case MoodOkay:
		return 3
	case MoodBad:
		return 2
	case MoodTerrible:
		return 1
	}
	return 0
}

// Positive reports amazing or good.
func (m Mood) Positive() bool {
	return m == MoodAmazing || m == MoodGood
}

type MoodEntry struct {
	Date      string    `json:"date"`
	Mood      Mood      `json:"mood"`
	Timestamp time.Time `json:"timestamp"`
}

// Moods keeps at most one entry per day, oldest first.
type Moods []MoodEntry

// Log records today's mood, replacing any earlier entry for the same day.
func (ms *Moods) Log(mood Mood, now time.Time) (MoodEntry, error) {
	if mood.Score() == 0 {
		return MoodEntry{}, apperr.Invalid("mood", fmt.Sprintf("unknown mood %q", mood))
	}
	e := MoodEntry{Date: timeutil.Day(now), Mood: mood, Timestamp: now}
	kept := make(Moods, 0, len(*ms)+1)
	for _, m := range *ms {
		if m.Date != e.Date {
			kept = append(kept, m)
		}
	}
	kept = append(kept, e)
	if len(kept) > MoodWindow {
		kept = kept[len(kept)-MoodWindow:]
	}
	*ms = kept
	return e, nil
}

// On returns the mood logged for day.
func (ms Moods) On(day string) (MoodEntry, bool) {
	for _, m := range ms {
		if m.Date == day {
			return m, true
		}
	}
	return MoodEntry{}, false
}

type EnergyEntry struct {
	Date      string    `json:"date"`
	Level     int       `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

// EnergyLog keeps at most one sample per day, oldest first.
type EnergyLog []EnergyEntry

// Log records today's energy level in [0, 10].
func (es *EnergyLog) Log(level int, now time.Time) (EnergyEntry, error) {
	if level < 0 || level > MaxEnergy {
		return EnergyEntry{}, apperr.Invalid("level", fmt.Sprintf("must be between 0 and %d", MaxEnergy))
	}
	e := EnergyEntry{Date: timeutil.Day(now), Level: level, Timestamp: now}
	kept := make(EnergyLog, 0, len(*es)+1)
	for _, x := range *es {
		if x.Date != e.Date {
			kept = append(kept, x)
		}
	}
	kept = append(kept, e)
	if len(kept) > EnergyWindow {
		kept = kept[len(kept)-EnergyWindow:]
	}
	*es = kept
	return e, nil
}

// On returns the energy sample for day.
func (es EnergyLog) On(day string) (EnergyEntry, bool) {
	for _, e := range es {
		if e.Date == day {
			return e, true
		}
	}
	return EnergyEntry{}, false
}

type GratitudeEntry struct {
	Date      string    `json:"date"`
	Items     []string  `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

// Gratitudes keeps at most one list per day, oldest first.
type Gratitudes []GratitudeEntry

// Log records up to three non-blank items for today.
func (gs *Gratitudes) Log(items []string, now time.Time) (GratitudeEntry, error) {
	clean := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			clean = append(clean, it)
		}
	}
	switch {
	case len(clean) == 0:
		return GratitudeEntry{}, apperr.Invalid("items", "at least one item is required")
	case len(clean) > MaxGratitude:
		return GratitudeEntry{}, apperr.Invalid("items", fmt.Sprintf("at most %d items", MaxGratitude))
	}
	e := GratitudeEntry{Date: timeutil.Day(now), Items: clean, Timestamp: now}
	kept := make(Gratitudes, 0, len(*gs)+1)
	for _, g := range *gs {
		if g.Date != e.Date {
			kept = append(kept, g)
		}
	}
	kept = append(kept, e)
	if len(kept) > GratitudeWindow {
		kept = kept[len(kept)-GratitudeWindow:]
	}
	*gs = kept
	return e, nil
}

// Has reports whether a list was logged on day.
func (gs Gratitudes) Has(day string) bool {
	for _, g := range gs {
		if g.Date == day {
			return true
		}
	}
	return false
}
