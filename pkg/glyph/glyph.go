// Package glyph maps lyfocus values to the symbols printed for them.
package glyph

import (
	"fmt"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/goal"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

func (g Glyph) String() string {
	return g.Symbol
}

const (
	escape     = "\x1b"
	resetCode  = 0
	boldCode   = 1
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

var (
	Open      = Glyph{Key: "open", Symbol: "●", Meaning: "open todo"}
	Done      = Glyph{Key: "done", Symbol: "✘", Meaning: "completed"}
	HabitDone = Glyph{Key: "habit", Symbol: "✔", Meaning: "habit done today"}
	Streak    = Glyph{Key: "streak", Symbol: "🔥", Meaning: "streak"}
	Overdue   = Glyph{Key: "overdue", Symbol: "⚠️", Meaning: "deadline passed"}
	Urgent    = Glyph{Key: "urgent", Symbol: "⏰", Meaning: "due within a week"}
	Upcoming  = Glyph{Key: "upcoming", Symbol: "📅", Meaning: "due later"}
)

var moods = map[activity.Mood]Glyph{
	activity.MoodAmazing:  {Key: "amazing", Symbol: "🤩", Meaning: "Amazing"},
	activity.MoodGood:     {Key: "good", Symbol: "😊", Meaning: "Good"},
	activity.MoodOkay:     {Key: "okay", Symbol: "😐", Meaning: "Okay"},
	activity.MoodBad:      {Key: "bad", Symbol: "😔", Meaning: "Bad"},
	activity.MoodTerrible: {Key: "terrible", Symbol: "😢", Meaning: "Terrible"},
}

// Mood returns the face for m.
func Mood(m activity.Mood) Glyph {
	if g, ok := moods[m]; ok {
		return g
	}
	return Glyph{Key: string(m), Symbol: "?", Meaning: string(m)}
}

var categories = map[goal.Category]Glyph{
	goal.CategoryHealth:        {Key: "health", Symbol: "🏃", Meaning: "Health"},
	goal.CategoryLearning:      {Key: "learning", Symbol: "📚", Meaning: "Learning"},
	goal.CategoryCareer:        {Key: "career", Symbol: "💼", Meaning: "Career"},
	goal.CategoryRelationships: {Key: "relationships", Symbol: "❤️", Meaning: "Relationships"},
	goal.CategoryCreativity:    {Key: "creativity", Symbol: "🎨", Meaning: "Creativity"},
	goal.CategoryPersonal:      {Key: "personal", Symbol: "✨", Meaning: "Personal"},
	goal.CategoryOther:         {Key: "other", Symbol: "📌", Meaning: "Other"},
}

// Category returns the badge for c; unknown categories get the "other" pin.
func Category(c goal.Category) Glyph {
	if g, ok := categories[c]; ok {
		return g
	}
	return categories[goal.CategoryOther]
}

// Deadline returns the marker for a deadline status.
func Deadline(s goal.DeadlineStatus) Glyph {
	switch s {
	case goal.DeadlineOverdue:
		return Overdue
	case goal.DeadlineUrgent:
		return Urgent
	case goal.DeadlineUpcoming:
		return Upcoming
	}
	return Glyph{}
}

// heat are the heatmap cells for levels 0 through 4.
var heat = []string{"·", "░", "▒", "▓", "█"}

// Heat returns the heatmap cell for level, clamped to 0..4.
func Heat(level int) string {
	return heat[max(0, min(level, len(heat)-1))]
}
