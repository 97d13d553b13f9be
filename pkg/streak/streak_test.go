package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/progress"
)

var now = time.Date(2026, time.October, 18, 20, 0, 0, 0, time.Local)

const (
	today     = "2026-10-18"
	yesterday = "2026-10-17"
	twoAgo    = "2026-10-16"
)

func TestRecompute(t *testing.T) {
	tests := []struct {
		name   string
		in     progress.UserProgress
		active bool
		want   progress.UserProgress
		change Change
	}{
		{
			name:   "first activity ever",
			in:     progress.UserProgress{Level: 1},
			active: true,
			want:   progress.UserProgress{Level: 1, CurrentStreak: 1, LongestStreak: 1, LastActiveDate: today},
			change: Started,
		},
		{
			name:   "continues yesterday",
			in:     progress.UserProgress{CurrentStreak: 4, LongestStreak: 4, LastActiveDate: yesterday},
			active: true,
			want:   progress.UserProgress{CurrentStreak: 5, LongestStreak: 5, LastActiveDate: today},
			change: Extended,
		},
		{
			name:   "already counted today",
			in:     progress.UserProgress{CurrentStreak: 5, LongestStreak: 9, LastActiveDate: today},
			active: true,
			want:   progress.UserProgress{CurrentStreak: 5, LongestStreak: 9, LastActiveDate: today},
			change: Unchanged,
		},
		{
			name:   "restart after gap",
			in:     progress.UserProgress{CurrentStreak: 0, LongestStreak: 9, LastActiveDate: twoAgo},
			active: true,
			want:   progress.UserProgress{CurrentStreak: 1, LongestStreak: 9, LastActiveDate: today},
			change: Started,
		},
		{
			name:   "grace period",
			in:     progress.UserProgress{CurrentStreak: 3, LongestStreak: 3, LastActiveDate: yesterday},
			want:   progress.UserProgress{CurrentStreak: 3, LongestStreak: 3, LastActiveDate: yesterday},
			change: Unchanged,
		},
		{
			name:   "broken",
			in:     progress.UserProgress{CurrentStreak: 3, LongestStreak: 3, LastActiveDate: twoAgo},
			want:   progress.UserProgress{CurrentStreak: 0, LongestStreak: 3, LastActiveDate: twoAgo},
			change: Broken,
		},
		{
			name:   "never active",
			in:     progress.UserProgress{},
			want:   progress.UserProgress{},
			change: Unchanged,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			assert.Equal(t, tt.change, Recompute(&p, tt.active, now))
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	for _, active := range []bool{true, false} {
		for _, last := range []string{"", today, yesterday, twoAgo} {
			p := progress.UserProgress{CurrentStreak: 2, LongestStreak: 6, LastActiveDate: last}
			Recompute(&p, active, now)
			once := p
			Recompute(&p, active, now)
			assert.Equal(t, once, p, "active=%v last=%q", active, last)
		}
	}
}

func TestRecomputeFromLog(t *testing.T) {
	p := progress.UserProgress{CurrentStreak: 2, LongestStreak: 2, LastActiveDate: yesterday}
	log := activity.Log{Moods: activity.Moods{{Date: today, Mood: activity.MoodGood}}}
	assert.Equal(t, Extended, RecomputeFromLog(&p, log, now))
	assert.Equal(t, 3, p.CurrentStreak)
}

func TestCompleteHabit(t *testing.T) {
	h := activity.Habit{Streak: 5, LastCompleted: yesterday}
	assert.True(t, CompleteHabit(&h, now))
	assert.Equal(t, 6, h.Streak)
	assert.True(t, h.CompletedToday)
	assert.Equal(t, today, h.LastCompleted)

	assert.False(t, CompleteHabit(&h, now), "second completion the same day is a no-op")
	assert.Equal(t, 6, h.Streak)

	fresh := activity.Habit{}
	assert.True(t, CompleteHabit(&fresh, now))
	assert.Equal(t, 1, fresh.Streak)

	lapsed := activity.Habit{Streak: 12, LastCompleted: twoAgo}
	assert.True(t, CompleteHabit(&lapsed, now))
	assert.Equal(t, 1, lapsed.Streak)
}

func TestNormalizeHabitsRollsOverDay(t *testing.T) {
	habits := activity.Habits{
		{ID: 1, Streak: 2, CompletedToday: true, LastCompleted: yesterday},
		{ID: 2, Streak: 1, CompletedToday: true, LastCompleted: today},
	}
	assert.True(t, NormalizeHabits(habits, now))
	assert.False(t, habits[0].CompletedToday)
	assert.Equal(t, 2, habits[0].Streak, "rollover keeps the streak")
	assert.True(t, habits[1].CompletedToday)
	assert.False(t, NormalizeHabits(habits, now))
}
