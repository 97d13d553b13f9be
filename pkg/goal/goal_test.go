package goal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/events"
)

// Wednesday
var now = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.Local)

func mustCreate(t *testing.T, l *List, spec Spec) Goal {
	t.Helper()
	g, reason, err := l.Create(spec, now)
	require.NoError(t, err)
	require.Equal(t, events.ReasonGoalCreated, reason)
	return g
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve.Field
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		spec  Spec
		field string
	}{
		{"missing title", Spec{Title: "  ", Type: TypeNumeric, Target: 5}, "title"},
		{"missing type", Spec{Title: "Run"}, "type"},
		{"unknown type", Spec{Title: "Run", Type: "daily"}, "type"},
		{"numeric without target", Spec{Title: "Read", Type: TypeNumeric}, "target"},
		{"habit negative target", Spec{Title: "Meditate", Type: TypeHabit, Target: -3}, "target"},
		{"weekly without weekly target", Spec{Title: "Gym", Type: TypeWeekly}, "weeklyTarget"},
		{"milestone without steps", Spec{Title: "Launch", Type: TypeMilestone, Milestones: []string{" ", ""}}, "milestones"},
		{"bad deadline", Spec{Title: "Tax", Type: TypeDeadline, Deadline: "next week"}, "deadline"},
		{"bad category", Spec{Title: "Run", Type: TypeNumeric, Target: 5, Category: "fun"}, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l List
			_, _, err := l.Create(tt.spec, now)
			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, tt.field, fieldOf(t, err))
			assert.Empty(t, l, "no partial goal is created")
		})
	}
}

func TestCreateResolvesTargets(t *testing.T) {
	tests := []struct {
		spec   Spec
		target int
	}{
		{Spec{Title: "a", Type: TypeNumeric, Target: 12}, 12},
		{Spec{Title: "b", Type: TypeDeadline, Target: 99, Deadline: "2026-12-31"}, 1},
		{Spec{Title: "c", Type: TypeMilestone, Milestones: []string{"x", "", "y", "z"}}, 3},
		{Spec{Title: "d", Type: TypeYesNo}, DefaultYesNoTarget},
		{Spec{Title: "e", Type: TypeYesNo, Target: 10}, 10},
		{Spec{Title: "f", Type: TypePercentage, Target: 7}, 100},
		{Spec{Title: "g", Type: TypeWeekly, WeeklyTarget: 3}, 3},
		{Spec{Title: "h", Type: TypeWeekly, WeeklyTarget: 3, Target: 40}, 40},
	}
	var l List
	for _, tt := range tests {
		g := mustCreate(t, &l, tt.spec)
		assert.Equal(t, tt.target, g.Target, tt.spec.Title)
		assert.Zero(t, g.CurrentProgress)
		assert.False(t, g.Completed)
		assert.Equal(t, CategoryOther, g.Category)
	}
	assert.Len(t, l, len(tests))
}

func TestIncrementProgressCompletesOnce(t *testing.T) {
	var l List
	g := mustCreate(t, &l, Spec{Title: "Read books", Type: TypeNumeric, Target: 10, Unit: "books"})

	_, _, err := l.IncrementProgress(g.ID, 0, now)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, _, err = l.IncrementProgress(g.ID, -2, now)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, _, err = l.IncrementProgress(777, 1, now)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, reason, err := l.IncrementProgress(g.ID, 4, now)
	require.NoError(t, err)
	assert.Equal(t, events.ReasonGoalProgress, reason)
	assert.Equal(t, 40, got.Percentage(now))

	got, reason, err = l.IncrementProgress(g.ID, 6, now)
	require.NoError(t, err)
	assert.Equal(t, events.ReasonGoalCompleted, reason)
	assert.True(t, got.Completed)

	got, reason, err = l.IncrementProgress(g.ID, 5, now)
	require.NoError(t, err)
	assert.Equal(t, events.ReasonGoalProgress, reason, "overshoot is routine progress")
	assert.Equal(t, 150, got.Percentage(now), "raw percentage keeps overshoot")
	assert.Equal(t, 100, got.BarPercentage(now))
}

func TestIncrementProgressIsAdditive(t *testing.T) {
	var split, once List
	a := mustCreate(t, &split, Spec{Title: "km", Type: TypeNumeric, Target: 100})
	b := mustCreate(t, &once, Spec{Title: "km", Type: TypeNumeric, Target: 100})

	amounts := []float64{1.5, 2, 10, 0.5}
	sum := 0.0
	for _, a2 := range amounts {
		_, _, err := split.IncrementProgress(a.ID, a2, now)
		require.NoError(t, err)
		sum += a2
	}
	_, _, err := once.IncrementProgress(b.ID, sum, now)
	require.NoError(t, err)

	ga, _ := split.Get(a.ID)
	gb, _ := once.Get(b.ID)
	assert.Equal(t, gb.CurrentProgress, ga.CurrentProgress)
}

// The completion bonus is paid at most once per goal, whichever path
// completes it first.
func TestToggleCompletionDoesNotDoubleAward(t *testing.T) {
	var l List
	g := mustCreate(t, &l, Spec{Title: "Push-ups", Type: TypeHabit, Target: 2})

	_, reason, err := l.IncrementProgress(g.ID, 2, now)
	require.NoError(t, err)
	require.Equal(t, events.ReasonGoalCompleted, reason)

	off, reason, err := l.ToggleCompletion(g.ID, now)
	require.NoError(t, err)
	assert.False(t, off.Completed)
	assert.Empty(t, reason)

	on, reason, err := l.ToggleCompletion(g.ID, now)
	require.NoError(t, err)
	assert.True(t, on.Completed)
	assert.Empty(t, reason, "bonus already paid through progress")
}

func TestToggleCompletionAwardsFirstTime(t *testing.T) {
	var l List
	g := mustCreate(t, &l, Spec{Title: "Finish thesis", Type: TypeDeadline, Deadline: "2026-11-01"})

	on, reason, err := l.ToggleCompletion(g.ID, now)
	require.NoError(t, err)
	assert.True(t, on.Completed)
	assert.False(t, on.Reached(), "manual completion may disagree with progress")
	assert.Equal(t, events.ReasonGoalCompleted, reason)

	_, _, _ = l.ToggleCompletion(g.ID, now)
	_, reason, err = l.ToggleCompletion(g.ID, now)
	require.NoError(t, err)
	assert.Empty(t, reason)

	_, _, err = l.ToggleCompletion(404, now)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMilestoneProgress(t *testing.T) {
	var l List
	g := mustCreate(t, &l, Spec{Title: "Launch", Type: TypeMilestone, Milestones: []string{"plan", "build", "test", "ship"}})

	_, reason, err := l.ToggleMilestone(g.ID, 0, now)
	require.NoError(t, err)
	assert.Equal(t, events.ReasonGoalProgress, reason)
	got, _, err := l.ToggleMilestone(g.ID, 2, now)
	require.NoError(t, err)

	assert.Equal(t, 2.0, got.CurrentProgress)
	assert.Equal(t, 4, got.Target)
	assert.Equal(t, 50, got.Percentage(now))
	assert.False(t, got.Completed)

	got, reason, err = l.ToggleMilestone(g.ID, 2, now)
	require.NoError(t, err)
	assert.Empty(t, reason, "unchecking earns nothing")
	assert.Equal(t, 1.0, got.CurrentProgress)

	for _, i := range []int{1, 2} {
		_, _, err = l.ToggleMilestone(g.ID, i, now)
		require.NoError(t, err)
	}
	got, reason, err = l.ToggleMilestone(g.ID, 3, now)
	require.NoError(t, err)
	assert.Equal(t, events.ReasonGoalCompleted, reason)
	assert.True(t, got.Completed)

	got, _, err = l.ToggleMilestone(g.ID, 3, now)
	require.NoError(t, err)
	assert.False(t, got.Completed, "completion follows the target rule")

	_, _, err = l.ToggleMilestone(g.ID, 4, now)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	other := mustCreate(t, &l, Spec{Title: "x", Type: TypeNumeric, Target: 1})
	_, _, err = l.ToggleMilestone(other.ID, 0, now)
	assert.Equal(t, "type", fieldOf(t, err))
}

func TestWeeklyProgressCountsCurrentWeek(t *testing.T) {
	var l List
	g := mustCreate(t, &l, Spec{Title: "Gym", Type: TypeWeekly, WeeklyTarget: 3, Target: 10})

	lastSaturday := time.Date(2026, time.October, 10, 18, 0, 0, 0, time.Local)
	sundayMidnight := time.Date(2026, time.October, 11, 0, 0, 0, 0, time.Local)
	for _, ts := range []time.Time{lastSaturday, sundayMidnight, now} {
		_, _, err := l.RecordWeeklyProgress(g.ID, ts)
		require.NoError(t, err)
	}
	got, _ := l.Get(g.ID)
	assert.Equal(t, 2, got.WeekCount(now))
	assert.Equal(t, 67, got.Percentage(now))
	assert.Equal(t, 3.0, got.CurrentProgress)

	numeric := mustCreate(t, &l, Spec{Title: "x", Type: TypeNumeric, Target: 1})
	_, _, err := l.RecordWeeklyProgress(numeric.ID, now)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUpdatePreservesProgress(t *testing.T) {
	var l List
	g := mustCreate(t, &l, Spec{Title: "Launch", Type: TypeMilestone, Milestones: []string{"a", "b", "c"}})
	for _, i := range []int{0, 2} {
		_, _, err := l.ToggleMilestone(g.ID, i, now)
		require.NoError(t, err)
	}

	later := now.Add(time.Hour)
	up, reason, err := l.Update(g.ID, Spec{Title: "Launch v2", Type: TypeMilestone, Milestones: []string{"a", "b"}, Category: CategoryCareer}, later)
	require.NoError(t, err)
	assert.Equal(t, events.ReasonGoalUpdated, reason)
	assert.Equal(t, "Launch v2", up.Title)
	assert.Equal(t, []int{0}, up.CompletedMilestones, "indices past the new list are dropped")
	assert.Equal(t, 1.0, up.CurrentProgress)
	assert.Equal(t, 2, up.Target)
	assert.Equal(t, g.CreatedAt, up.CreatedAt)
	assert.Equal(t, later, up.UpdatedAt)

	_, _, err = l.Update(g.ID, Spec{Title: "", Type: TypeMilestone, Milestones: []string{"a"}}, later)
	assert.Equal(t, "title", fieldOf(t, err))
	cur, _ := l.Get(g.ID)
	assert.Equal(t, "Launch v2", cur.Title, "failed update leaves the goal untouched")

	_, _, err = l.Update(999, Spec{Title: "x", Type: TypeNumeric, Target: 1}, later)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateNumericKeepsProgressAndRederivesCompletion(t *testing.T) {
	var l List
	g := mustCreate(t, &l, Spec{Title: "Save", Type: TypeNumeric, Target: 100, Unit: "$"})
	_, _, err := l.IncrementProgress(g.ID, 60, now)
	require.NoError(t, err)

	up, _, err := l.Update(g.ID, Spec{Title: "Save", Type: TypeNumeric, Target: 50, Unit: "$"}, now)
	require.NoError(t, err)
	assert.Equal(t, 60.0, up.CurrentProgress)
	assert.True(t, up.Completed)
}

func TestDeleteFilterStats(t *testing.T) {
	var l List
	a := mustCreate(t, &l, Spec{Title: "a", Type: TypeNumeric, Target: 1})
	mustCreate(t, &l, Spec{Title: "b", Type: TypeNumeric, Target: 1})
	_, _, err := l.IncrementProgress(a.ID, 1, now)
	require.NoError(t, err)

	assert.Equal(t, Stats{Total: 2, Active: 1, Completed: 1}, l.Stats())
	assert.Len(t, l.Filter(FilterActive), 1)
	assert.Len(t, l.Filter(FilterCompleted), 1)
	assert.Len(t, l.Filter(FilterAll), 2)

	require.NoError(t, l.Delete(a.ID))
	assert.ErrorIs(t, l.Delete(a.ID), apperr.ErrNotFound)
	assert.Len(t, l, 1)
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		deadline string
		days     int
		status   DeadlineStatus
	}{
		{"", 0, DeadlineNone},
		{"2026-10-13", -1, DeadlineOverdue},
		{"2026-10-15", 1, DeadlineUrgent},
		{"2026-10-21", 7, DeadlineUrgent},
		{"2026-10-30", 16, DeadlineUpcoming},
	}
	for _, tt := range tests {
		days, status := Goal{Deadline: tt.deadline}.DaysRemaining(now)
		assert.Equal(t, tt.days, days, tt.deadline)
		assert.Equal(t, tt.status, status, tt.deadline)
	}
}

func TestCompletedImpliesReachedThroughProgress(t *testing.T) {
	var l List
	for _, spec := range []Spec{
		{Title: "n", Type: TypeNumeric, Target: 3},
		{Title: "h", Type: TypeHabit, Target: 2},
		{Title: "y", Type: TypeYesNo, Target: 2},
		{Title: "p", Type: TypePercentage},
		{Title: "d", Type: TypeDeadline},
	} {
		g := mustCreate(t, &l, spec)
		for i := 0; i < 4; i++ {
			got, _, err := l.IncrementProgress(g.ID, 1, now)
			require.NoError(t, err)
			if got.Completed {
				assert.True(t, got.Reached(), spec.Title)
			}
		}
	}
}

func TestCompletingStepReturnsCompletedGoal(t *testing.T) {
	var l List
	n := mustCreate(t, &l, Spec{Title: "n", Type: TypeNumeric, Target: 2})
	got, reason, err := l.IncrementProgress(n.ID, 2, now)
	require.NoError(t, err)
	assert.Equal(t, events.ReasonGoalCompleted, reason)
	assert.True(t, got.Completed)
	assert.True(t, got.CompletionAwarded)

	w := mustCreate(t, &l, Spec{Title: "w", Type: TypeWeekly, WeeklyTarget: 1})
	got, reason, err = l.RecordWeeklyProgress(w.ID, now)
	require.NoError(t, err)
	assert.Equal(t, events.ReasonGoalCompleted, reason)
	assert.True(t, got.Completed)

	m := mustCreate(t, &l, Spec{Title: "m", Type: TypeMilestone, Milestones: []string{"only"}})
	got, reason, err = l.ToggleMilestone(m.ID, 0, now)
	require.NoError(t, err)
	assert.Equal(t, events.ReasonGoalCompleted, reason)
	assert.True(t, got.Completed)

	for _, id := range []int64{n.ID, w.ID, m.ID} {
		stored, _ := l.Get(id)
		assert.True(t, stored.Completed)
	}
}

func TestDerivedProgressGoalsRejectIncrement(t *testing.T) {
	var l List
	w := mustCreate(t, &l, Spec{Title: "Gym", Type: TypeWeekly, WeeklyTarget: 3})
	m := mustCreate(t, &l, Spec{Title: "Launch", Type: TypeMilestone, Milestones: []string{"a", "b", "c", "d"}})

	for _, id := range []int64{w.ID, m.ID} {
		_, _, err := l.IncrementProgress(id, 5, now)
		assert.Equal(t, "type", fieldOf(t, err))
	}

	got, _, err := l.RecordWeeklyProgress(w.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.CurrentProgress)
	assert.False(t, got.Completed)

	got, _, err = l.ToggleMilestone(m.ID, 0, now)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.CurrentProgress)
	assert.False(t, got.Completed)
}

func TestUpdateToWeeklyRecountsProgress(t *testing.T) {
	var l List
	g := mustCreate(t, &l, Spec{Title: "Gym", Type: TypeNumeric, Target: 3})
	_, _, err := l.IncrementProgress(g.ID, 5, now)
	require.NoError(t, err)

	up, _, err := l.Update(g.ID, Spec{Title: "Gym", Type: TypeWeekly, WeeklyTarget: 3}, now)
	require.NoError(t, err)
	assert.Equal(t, 0.0, up.CurrentProgress)
	assert.False(t, up.Completed)
}
