package insights

import (
	"fmt"
	"math"
	"time"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Kind identifies which rule produced an Insight.
type Kind string

const (
	KindEnergyImpact Kind = "energy-impact"
	KindPeakDay      Kind = "peak-performance"
	KindStreakMaster Kind = "streak-master"
	KindConsistency  Kind = "consistency"
	KindRoomToGrow   Kind = "room-to-grow"
	KindGratitude    Kind = "gratitude-streak"
	KindReflection   Kind = "reflection-master"
)

// Insight is one generated observation.
type Insight struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Thresholds used by the rules below.
const (
	MinCorrelationSamples = 5
	MinCorrelationPairs   = 3
	MinHighEnergyPairs    = 2
	HighEnergy            = 7
	LowEnergy             = 4
	MinPeakWeekdays       = 3
	PeakFactor            = 1.3
	StreakMasterMin       = 7
	GratitudeStreakMin    = 3
	ReflectionWindowDays  = 30
	ReflectionMin         = 10
)

// Smart runs every insight rule. Rules are independent; any subset may fire.
func Smart(s Snapshot) []Insight {
	var out []Insight
	for _, rule := range []func(Snapshot) (Insight, bool){
		energyImpact,
		peakPerformance,
		streakMaster,
		consistency,
		gratitudeStreak,
		reflection,
	} {
		if in, ok := rule(s); ok {
			out = append(out, in)
		}
	}
	return out
}

// MoodEnergyImprovement returns the rounded percentage by which mood on
// high-energy days beats mood on low-energy days. ok is false when there is
// not enough data to say.
func MoodEnergyImprovement(l activity.Log) (int, bool) {
	if len(l.Moods) < MinCorrelationSamples || len(l.Energy) < MinCorrelationSamples {
		return 0, false
	}
	var pairs, highN, lowN int
	var highSum, lowSum float64
	for _, m := range l.Moods {
		e, ok := l.Energy.On(m.Date)
		if !ok {
			continue
		}
		pairs++
		switch {
		case e.Level >= HighEnergy:
			highN++
			highSum += float64(m.Mood.Score())
		case e.Level <= LowEnergy:
			lowN++
			lowSum += float64(m.Mood.Score())
		}
	}
	if pairs < MinCorrelationPairs || highN < MinHighEnergyPairs {
		return 0, false
	}
	high := highSum / float64(highN)
	low := high - 1
	if lowN > 0 {
		low = lowSum / float64(lowN)
	}
	if low <= 0 {
		return 0, false
	}
	return int(math.Round((high - low) / low * 100)), true
}

func energyImpact(s Snapshot) (Insight, bool) {
	improvement, ok := MoodEnergyImprovement(s.Log)
	if !ok || improvement <= 10 {
		return Insight{}, false
	}
	return Insight{
		Kind:  KindEnergyImpact,
		Title: "⚡ Energy Impact",
		Text:  fmt.Sprintf("On days when your energy is %d+, your mood is %d%% better. Prioritize sleep and exercise!", HighEnergy, improvement),
	}, true
}

func peakPerformance(s Snapshot) (Insight, bool) {
	counts := CompletedByWeekday(s.Log.Todos)
	if len(counts) < MinPeakWeekdays {
		return Insight{}, false
	}
	best := bestWeekday(counts)
	others := 0
	for _, c := range counts {
		if c.Weekday != best.Weekday {
			others += c.Count
		}
	}
	avg := float64(others) / float64(len(counts)-1)
	if float64(best.Count) <= avg*PeakFactor {
		return Insight{}, false
	}
	uplift := int(math.Round((float64(best.Count)/avg - 1) * 100))
	return Insight{
		Kind:  KindPeakDay,
		Title: "📊 Peak Performance",
		Text: fmt.Sprintf("%s is your most productive day! You complete %d%% more tasks. Schedule important work on %ss.",
			best.Weekday, uplift, best.Weekday),
	}, true
}

// NextStreakMilestone is the next habit streak target after streak.
func NextStreakMilestone(streak int) int {
	switch {
	case streak >= 30:
		return 60
	case streak >= 14:
		return 30
	default:
		return 14
	}
}

func streakMaster(s Snapshot) (Insight, bool) {
	best := -1
	for i, h := range s.Log.Habits {
		if h.Streak > 0 && (best < 0 || h.Streak > s.Log.Habits[best].Streak) {
			best = i
		}
	}
	if best < 0 || s.Log.Habits[best].Streak < StreakMasterMin {
		return Insight{}, false
	}
	h := s.Log.Habits[best]
	milestone := NextStreakMilestone(h.Streak)
	return Insight{
		Kind:  KindStreakMaster,
		Title: "🔥 Streak Master",
		Text:  fmt.Sprintf("You're %d days away from a %d-day streak on %q! Keep it up!", milestone-h.Streak, milestone, h.Name),
	}, true
}

// ActiveDays counts the trailing seven calendar days that had qualifying
// activity. The result is in [0, 7].
func ActiveDays(s Snapshot) int {
	n := 0
	for _, d := range timeutil.LastDays(s.Now, 7) {
		if s.Log.ActiveOn(d) {
			n++
		}
	}
	return n
}

func consistency(s Snapshot) (Insight, bool) {
	days := ActiveDays(s)
	pct := percent(days, 7)
	switch {
	case pct >= 70:
		return Insight{
			Kind:  KindConsistency,
			Title: "⭐ Consistency Champion",
			Text:  fmt.Sprintf("You've been active %d out of 7 days this week (%d%%). Amazing consistency!", days, pct),
		}, true
	case pct > 0 && pct < 50:
		return Insight{
			Kind:  KindRoomToGrow,
			Title: "💪 Room to Grow",
			Text:  fmt.Sprintf("You've been active %d out of 7 days. Try to log something daily to build momentum!", days),
		}, true
	}
	return Insight{}, false
}

// GratitudeStreak counts consecutive days with a gratitude list, starting
// today and stepping back until the first gap.
func GratitudeStreak(gs activity.Gratitudes, now time.Time) int {
	streak := 0
	for d := timeutil.Day(now); gs.Has(d) && streak < len(gs); d = timeutil.AddDays(d, -1) {
		streak++
	}
	return streak
}

func gratitudeStreak(s Snapshot) (Insight, bool) {
	n := GratitudeStreak(s.Log.Gratitude, s.Now)
	if n < GratitudeStreakMin {
		return Insight{}, false
	}
	return Insight{
		Kind:  KindGratitude,
		Title: "🙏 Gratitude Streak",
		Text:  fmt.Sprintf("You've logged gratitudes for %d days in a row! Research shows daily gratitude improves wellbeing by up to 25%%.", n),
	}, true
}

// RecentJournalCount counts entries written in the trailing 30 days.
func RecentJournalCount(j activity.Journal, now time.Time) int {
	since := now.Add(-ReflectionWindowDays * day)
	n := 0
	for _, e := range j {
		if !e.Date.Before(since) {
			n++
		}
	}
	return n
}

func reflection(s Snapshot) (Insight, bool) {
	n := RecentJournalCount(s.Log.Journal, s.Now)
	if n < ReflectionMin {
		return Insight{}, false
	}
	return Insight{
		Kind:  KindReflection,
		Title: "📝 Reflection Master",
		Text:  fmt.Sprintf("You've written %d journal entries in the past month. Regular journaling reduces stress and increases self-awareness.", n),
	}, true
}
