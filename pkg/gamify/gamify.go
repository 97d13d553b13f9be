package gamify

import (
	"time"

	"tableflip.dev/lyfocus/pkg/events"
	"tableflip.dev/lyfocus/pkg/progress"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Rewards is the fixed XP table.
var Rewards = map[events.Reason]int{
	events.ReasonTodoCompleted:  10,
	events.ReasonHabitCompleted: 15,
	events.ReasonJournalSaved:   20,
	events.ReasonMoodLogged:     5,
	events.ReasonEnergyLogged:   5,
	events.ReasonGratitude:      15,
	events.ReasonDailyLogin:     25,
	events.ReasonGoalCreated:    10,
	events.ReasonGoalUpdated:    5,
	events.ReasonGoalProgress:   5,
	events.ReasonGoalCompleted:  50,
	events.ReasonDataBackup:     10,
}

// Result is the outcome of one award.
type Result struct {
	Reason    events.Reason `json:"reason"`
	XP        int           `json:"xp"`
	LeveledUp bool          `json:"leveledUp"`
	Level     Level         `json:"level"`
}

// AwardXP adds amount to p and re-resolves the level. LeveledUp is true
// once per award that crosses one or more thresholds. Negative amounts
// are ignored so xp never decreases.
func AwardXP(p *progress.UserProgress, amount int) Result {
	if amount < 0 {
		amount = 0
	}
	before := p.Level
	p.XP += amount
	lvl := LevelFor(p.XP)
	p.Level = lvl.Number
	return Result{XP: amount, LeveledUp: lvl.Number > before, Level: lvl}
}

// Award pays the table amount for reason. An empty reason awards nothing.
func Award(p *progress.UserProgress, reason events.Reason) (Result, bool) {
	amount, ok := Rewards[reason]
	if !ok {
		return Result{}, false
	}
	r := AwardXP(p, amount)
	r.Reason = reason
	return r, true
}

// CheckDailyLogin reports whether now is the first session of its calendar
// day, updating lastLogin when it is.
func CheckDailyLogin(lastLogin *string, now time.Time) bool {
	today := timeutil.Day(now)
	if *lastLogin == today {
		return false
	}
	*lastLogin = today
	return true
}

// Events converts a result into the notifications to publish.
func (r Result) Events(p progress.UserProgress, now time.Time) []events.Event {
	award := events.New(events.KindXPAwarded, now)
	award.Reason = r.Reason
	award.XP = r.XP
	award.TotalXP = p.XP
	award.Level = p.Level
	out := []events.Event{award}
	if r.LeveledUp {
		up := events.New(events.KindLevelUp, now)
		up.Reason = r.Reason
		up.TotalXP = p.XP
		up.Level = r.Level.Number
		up.LevelTitle = r.Level.Title
		out = append(out, up)
	}
	return out
}
