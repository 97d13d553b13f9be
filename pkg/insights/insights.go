// Package insights derives the read-only analytics shown on the insights
// page. Everything here is a pure function of a Snapshot; nothing is cached.
package insights

import (
	"math"
	"time"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/progress"
)

const (
	EmptyWeekly   = "Complete at least 7 days of activity to see your weekly review"
	EmptyHeatmap  = "Track your activity for 7+ days to see the heatmap!"
	EmptyInsights = "Keep logging your activities to unlock personalized insights!"
	EmptyEnergy   = "Log energy levels to see trends"
	EmptyGoals    = "No active goals. Create goals to see progress!"
)

const day = 24 * time.Hour

// Snapshot is the state an insights pass reads.
type Snapshot struct {
	Log      activity.Log
	Goals    goal.List
	Progress progress.UserProgress
	Now      time.Time
}

// Summary is the header row of the insights page.
type Summary struct {
	CurrentStreak  int `json:"currentStreak"`
	LongestStreak  int `json:"longestStreak"`
	TotalCompleted int `json:"totalCompleted"`
	// WeeklyProgress is the percentage of todos created in the last seven
	// days that are completed.
	WeeklyProgress int `json:"weeklyProgress"`
}

// Report is the full insights read-model. Nil sections are suppressed and
// should render their Empty* message.
type Report struct {
	Summary          Summary        `json:"summary"`
	Weekly           *WeeklyReview  `json:"weekly,omitempty"`
	Heatmap          *Heatmap       `json:"heatmap,omitempty"`
	Insights         []Insight      `json:"insights"`
	Performance      Performance    `json:"performance"`
	MoodDistribution []MoodCount    `json:"moodDistribution"`
	EnergyTrend      []EnergyPoint  `json:"energyTrend,omitempty"`
	Productivity     []DailyCount   `json:"productivity"`
	Goals            []GoalProgress `json:"goals"`
}

// Build runs every derivation over s.
func Build(s Snapshot) Report {
	return Report{
		Summary:          Summarize(s),
		Weekly:           Weekly(s),
		Heatmap:          BuildHeatmap(s.Log, s.Now),
		Insights:         Smart(s),
		Performance:      PerformanceStats(s.Log.Todos, s.Now),
		MoodDistribution: MoodDistribution(s.Log.Moods),
		EnergyTrend:      EnergyTrend(s.Log.Energy, s.Now),
		Productivity:     Productivity(s.Log, s.Now),
		Goals:            ActiveGoals(s.Goals, s.Now),
	}
}

// Summarize computes the header stats.
func Summarize(s Snapshot) Summary {
	since := s.Now.Add(-7 * day)
	created, done := 0, 0
	for _, t := range s.Log.Todos {
		if t.CreatedAt.Before(since) {
			continue
		}
		created++
		if t.Completed {
			done++
		}
	}
	return Summary{
		CurrentStreak:  s.Progress.CurrentStreak,
		LongestStreak:  s.Progress.LongestStreak,
		TotalCompleted: s.Log.Todos.Completed(),
		WeeklyProgress: percent(done, created),
	}
}

// percent is round(n/d*100), or 0 when d is 0.
func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}

// round1 rounds to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
