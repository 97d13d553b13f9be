// Package printers renders lyfocus state for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/glyph"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
	// Width wraps journal text; zero means 80.
	Width int
}

var (
	spacing = strings.Repeat(" ", len("1760774400000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// Writer is where pp prints.
func (pp *PrettyPrint) Writer() io.Writer {
	return pp.out()
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = c.Fprintln(pp.out(), "")
}

// Empty prints a faint placeholder line.
func (pp *PrettyPrint) Empty(msg string) {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprintf(pp.out(), " %s\n\n", msg)
}

func (pp *PrettyPrint) id(id int64) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	s := fmt.Sprint(id)
	_, _ = y.Fprint(pp.out(), s)
	_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(1, len(spacing)-len(s))))
}

func (pp *PrettyPrint) Todos(todos activity.Todos) {
	pp.TitleWithCount("Todos", len(todos)-todos.Completed(), "open task")
	if len(todos) == 0 {
		pp.Empty("none")
		return
	}
	for _, t := range todos {
		pp.id(t.ID)
		if t.Completed {
			_, _ = fmt.Fprintf(pp.out(), "%s %s\n", glyph.Done, glyph.Strike(t.Text))
		} else {
			_, _ = fmt.Fprintf(pp.out(), "%s %s\n", glyph.Open, t.Text)
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) Habits(habits activity.Habits) {
	pp.TitleWithCount("Habits", len(habits), "habit")
	if len(habits) == 0 {
		pp.Empty("none")
		return
	}
	faint := color.New(color.Faint)
	for _, h := range habits {
		pp.id(h.ID)
		mark := glyph.Open.Symbol
		if h.CompletedToday {
			mark = glyph.HabitDone.Symbol
		}
		_, _ = fmt.Fprintf(pp.out(), "%s %s ", mark, h.Name)
		_, _ = faint.Fprintf(pp.out(), "%s %d\n", glyph.Streak, h.Streak)
	}
	pp.NewLine()
}

// Journal prints entries newest first with their text wrapped.
func (pp *PrettyPrint) Journal(entries activity.Journal) {
	pp.TitleWithCount("Journal", len(entries), "entry")
	if len(entries) == 0 {
		pp.Empty("none")
		return
	}
	date := color.New(color.Bold)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		pp.id(e.ID)
		_, _ = date.Fprintln(pp.out(), e.Date.Local().Format("Mon, Jan 2 2006 15:04"))
		_, _ = fmt.Fprintln(pp.out(), wrap(e.Text, pp.width()))
		pp.NewLine()
	}
}

func wrap(s string, limit int) string {
	return wordwrap.String(s, max(20, limit))
}

// Bar renders percent as a fixed width bar, capped at 100.
func Bar(percent, width int) string {
	filled := min(width, max(0, percent*width/100))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Goals prints one card per goal.
func (pp *PrettyPrint) Goals(goals goal.List, now time.Time) {
	pp.TitleWithCount("Goals", len(goals), "goal")
	if len(goals) == 0 {
		pp.Empty("none")
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	for _, g := range goals {
		pp.id(g.ID)
		mark := glyph.Open.Symbol
		if g.Completed {
			mark = glyph.Done.Symbol
		}
		_, _ = bold.Fprintf(pp.out(), "%s %s ", mark, g.Title)
		_, _ = faint.Fprintf(pp.out(), "%s %s · %s\n", glyph.Category(g.Category), glyph.Category(g.Category).Meaning, g.Type.Label())

		pct := g.Percentage(now)
		_, _ = fmt.Fprintf(pp.out(), "  %s %3d%%  %s\n", Bar(pct, 20), pct, progressText(g, now))
		if g.Type == goal.TypeMilestone {
			for i, m := range g.Milestones {
				box := "☐"
				if g.MilestoneDone(i) {
					box = "☑"
				}
				_, _ = fmt.Fprintf(pp.out(), "  %s %d. %s\n", box, i, m)
			}
		}
		if days, status := g.DaysRemaining(now); status != goal.DeadlineNone {
			_, _ = faint.Fprintf(pp.out(), "  %s %s\n", glyph.Deadline(status), deadlineText(days, status, g.Deadline))
		}
	}
	pp.NewLine()
}

func progressText(g goal.Goal, now time.Time) string {
	switch g.Type {
	case goal.TypeWeekly:
		return fmt.Sprintf("%d / %d this week", g.WeekCount(now), g.WeeklyTarget)
	case goal.TypeMilestone:
		return fmt.Sprintf("%d / %d milestones", len(g.CompletedMilestones), len(g.Milestones))
	case goal.TypePercentage:
		return fmt.Sprintf("%g%%", g.CurrentProgress)
	case goal.TypeDeadline:
		if g.Completed {
			return "done"
		}
		return "in progress"
	case goal.TypeYesNo, goal.TypeHabit:
		return fmt.Sprintf("%g / %d days", g.CurrentProgress, g.Target)
	case goal.TypeNumeric:
		return strings.TrimSpace(fmt.Sprintf("%g / %d %s", g.CurrentProgress, g.Target, g.Unit))
	}
	return ""
}

func deadlineText(days int, status goal.DeadlineStatus, deadline string) string {
	switch status {
	case goal.DeadlineOverdue:
		return fmt.Sprintf("%d days overdue", -days)
	case goal.DeadlineUrgent:
		return fmt.Sprintf("%d days left", days)
	}
	return "Due " + deadline
}

// Moods prints the last week of moods, newest first.
func (pp *PrettyPrint) Moods(moods activity.Moods) {
	pp.Title("Moods")
	if len(moods) == 0 {
		pp.Empty("No moods logged yet")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for i := len(moods) - 1; i >= 0 && i >= len(moods)-7; i-- {
		m := moods[i]
		g := glyph.Mood(m.Mood)
		tbl.AddRow(m.Date, g.Symbol, g.Meaning)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Table prints label/value rows.
func (pp *PrettyPrint) Table(rows [][2]string) {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, r := range rows {
		tbl.AddRow(color.New(color.Faint).Sprint(r[0]), r[1])
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// DayLabel formats a calendar day for headings.
func DayLabel(day string) string {
	t, err := timeutil.ParseDay(day)
	if err != nil {
		return day
	}
	return t.Format("Mon Jan 2")
}
