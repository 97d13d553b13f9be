package gamify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/lyfocus/pkg/events"
	"tableflip.dev/lyfocus/pkg/progress"
)

func TestLevelFor(t *testing.T) {
	tests := map[int]int{
		0:      1,
		99:     1,
		100:    2,
		249:    2,
		250:    3,
		11999:  9,
		12000:  10,
		500000: 10,
	}
	for xp, want := range tests {
		assert.Equal(t, want, LevelFor(xp).Number, "xp=%d", xp)
	}
}

func TestLevelForIsMonotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 13000; xp += 7 {
		n := LevelFor(xp).Number
		require.GreaterOrEqual(t, n, prev, "xp=%d", xp)
		prev = n
	}
}

func TestAwardXPSignalsLevelUpOnce(t *testing.T) {
	p := progress.New()
	r := AwardXP(&p, 100)
	assert.True(t, r.LeveledUp)
	assert.Equal(t, "Beginner", r.Level.Title)
	assert.Equal(t, 2, p.Level)

	r = AwardXP(&p, 10)
	assert.False(t, r.LeveledUp)

	// 110 -> 1110 crosses Apprentice, Skilled and Disciplined at once.
	r = AwardXP(&p, 1000)
	assert.True(t, r.LeveledUp)
	assert.Equal(t, 5, r.Level.Number)
	assert.Len(t, r.Events(p, time.Now()), 2, "one award plus one level-up")

	r = AwardXP(&p, -50)
	assert.Equal(t, 1110, p.XP, "xp never decreases")
	assert.False(t, r.LeveledUp)
}

func TestAwardUsesRewardTable(t *testing.T) {
	p := progress.New()
	r, ok := Award(&p, events.ReasonGoalCompleted)
	require.True(t, ok)
	assert.Equal(t, 50, r.XP)
	assert.Equal(t, 50, p.XP)

	_, ok = Award(&p, "")
	assert.False(t, ok)
	assert.Equal(t, 50, p.XP)

	evs := r.Events(p, time.Now())
	require.Len(t, evs, 1)
	assert.Equal(t, events.KindXPAwarded, evs[0].Kind)
	assert.Equal(t, events.ReasonGoalCompleted, evs[0].Reason)
}

func TestProgress(t *testing.T) {
	lp := Progress(175)
	assert.Equal(t, 2, lp.Level.Number)
	require.NotNil(t, lp.Next)
	assert.Equal(t, 3, lp.Next.Number)
	assert.InDelta(t, 50.0, lp.Percent, 0.001)
	assert.Equal(t, 75, lp.XPToNext)

	top := Progress(20000)
	assert.Nil(t, top.Next)
	assert.Equal(t, 100.0, top.Percent)
}

func TestCheckDailyLogin(t *testing.T) {
	morning := time.Date(2026, time.October, 18, 7, 0, 0, 0, time.Local)
	last := ""
	assert.True(t, CheckDailyLogin(&last, morning))
	assert.Equal(t, "2026-10-18", last)
	assert.False(t, CheckDailyLogin(&last, morning.Add(12*time.Hour)))
	assert.True(t, CheckDailyLogin(&last, morning.Add(24*time.Hour)))
}
