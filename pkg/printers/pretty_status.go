package printers

import (
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/lyfocus/pkg/gamify"
	"tableflip.dev/lyfocus/pkg/glyph"
	"tableflip.dev/lyfocus/pkg/insights"
)

// Award prints what an operation paid. A nil result prints nothing.
func (pp *PrettyPrint) Award(r *gamify.Result) {
	if r == nil {
		return
	}
	g := color.New(color.FgGreen)
	_, _ = g.Fprintf(pp.out(), "+%d XP", r.XP)
	_, _ = color.New(color.Faint).Fprintf(pp.out(), " (%s)\n", r.Reason)
	if r.LeveledUp {
		_, _ = color.New(color.FgHiYellow, color.Bold).Fprintf(pp.out(),
			"🎉 Level up! You are now level %d, %s.\n", r.Level.Number, r.Level.Title)
	}
}

// Level prints the level line with a bar toward the next threshold.
func (pp *PrettyPrint) Level(lp gamify.LevelProgress) {
	pct := int(lp.Percent)
	_, _ = color.New(color.Bold).Fprintf(pp.out(), "Level %d %s", lp.Level.Number, lp.Level.Title)
	_, _ = fmt.Fprintf(pp.out(), "  %s %d XP", Bar(pct, 20), lp.XP)
	if lp.Next != nil {
		_, _ = color.New(color.Faint).Fprintf(pp.out(), "  %d to %s", lp.XPToNext, lp.Next.Title)
	}
	pp.NewLine()
}

// Dashboard prints the overview numbers.
func (pp *PrettyPrint) Dashboard(d insights.Dashboard) {
	pp.Level(d.Level)
	pp.NewLine()
	pp.Table([][2]string{
		{"Open todos", fmt.Sprint(d.OpenTodos)},
		{"Habits today", fmt.Sprintf("%d/%d", d.HabitsDoneToday, d.HabitsTotal)},
		{"Best habit streak", fmt.Sprintf("%s %d", glyph.Streak, d.BestHabitStreak)},
		{"Streak", fmt.Sprintf("%s %d days (longest %d)", glyph.Streak, d.CurrentStreak, d.LongestStreak)},
	})
	pp.NewLine()
}

// GoalSummary prints one bar per active goal.
func (pp *PrettyPrint) GoalSummary(goals []insights.GoalProgress) {
	pp.TitleWithCount("Goals", len(goals), "active goal")
	if len(goals) == 0 {
		pp.Empty(insights.EmptyGoals)
		return
	}
	rows := make([][2]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, [2]string{g.Title, fmt.Sprintf("%s %d%%", Bar(g.Percent, 20), g.Percent)})
	}
	pp.Table(rows)
	pp.NewLine()
}
