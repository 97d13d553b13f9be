package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/lyfocus/pkg/glyph"
	"tableflip.dev/lyfocus/pkg/insights"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

const width = len("·  ·  ·  ·  ·  ·  · ") // an example week

var heatColors = []*color.Color{
	color.New(color.Faint, color.FgWhite),
	color.New(color.FgGreen, color.Faint),
	color.New(color.FgGreen),
	color.New(color.FgHiGreen),
	color.New(color.FgHiGreen, color.Bold),
}

// Heatmap prints the cells as a calendar, one week per row starting on
// Sunday.
func (pp *PrettyPrint) Heatmap(h *insights.Heatmap) {
	if h == nil || len(h.Cells) == 0 {
		pp.Empty(insights.EmptyHeatmap)
		return
	}
	first, err := timeutil.ParseDay(h.Cells[0].Day)
	if err != nil {
		pp.Empty(insights.EmptyHeatmap)
		return
	}
	tf := color.New(color.FgWhite, color.Italic)
	_, _ = tf.Fprintln(pp.out(), "S  M  T  W  T  F  S")

	// Pad out the start of the first week.
	d := first.Weekday()
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}
	for _, c := range h.Cells {
		level := max(0, min(c.Level, len(heatColors)-1))
		_, _ = heatColors[level].Fprintf(pp.out(), "%s  ", glyph.Heat(level))
		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	if d != time.Sunday {
		_, _ = fmt.Fprint(pp.out(), "\n")
	}
	legend := make([]string, len(heatColors))
	for i := range heatColors {
		legend[i] = heatColors[i].Sprint(glyph.Heat(i))
	}
	_, _ = color.New(color.Faint).Fprintf(pp.out(), "%s\n", centered("less "+strings.Join(legend, " ")+" more", width))
	pp.NewLine()
}

func centered(s string, w int) string {
	if pad := (w - len([]rune(s))) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// Report prints the full insights page.
func (pp *PrettyPrint) Report(r insights.Report) {
	pp.Title("Summary")
	pp.Table([][2]string{
		{"Current streak", fmt.Sprintf("%d days", r.Summary.CurrentStreak)},
		{"Longest streak", fmt.Sprintf("%d days", r.Summary.LongestStreak)},
		{"Tasks completed", fmt.Sprint(r.Summary.TotalCompleted)},
		{"This week", fmt.Sprintf("%d%%", r.Summary.WeeklyProgress)},
	})
	pp.NewLine()

	pp.Title("Weekly review")
	if w := r.Weekly; w != nil {
		pp.Table([][2]string{
			{"Tasks", fmt.Sprintf("%d %s (last week %d)", w.TasksCompleted, w.Trend.Symbol(), w.PrevTasksCompleted)},
			{"Habit consistency", fmt.Sprintf("%d%%", w.HabitConsistency)},
			{"Positive moods", fmt.Sprintf("%d%%", w.PositiveMoodPercent)},
			{"Average energy", fmt.Sprintf("%.1f/10", w.AverageEnergy)},
			{"Streak", fmt.Sprintf("%d days", w.CurrentStreak)},
		})
		pp.NewLine()
	} else {
		pp.Empty(insights.EmptyWeekly)
	}

	pp.Title("Activity")
	pp.Heatmap(r.Heatmap)

	pp.Title("Insights")
	if len(r.Insights) == 0 {
		pp.Empty(insights.EmptyInsights)
	}
	bold := color.New(color.Bold)
	for _, in := range r.Insights {
		_, _ = bold.Fprintln(pp.out(), in.Title)
		_, _ = fmt.Fprintln(pp.out(), "  "+strings.ReplaceAll(wrap(in.Text, pp.width()-2), "\n", "\n  "))
	}
	if len(r.Insights) > 0 {
		pp.NewLine()
	}

	pp.Title("Performance")
	best := r.Performance.BestDay
	if best == "" {
		best = "-"
	}
	pp.Table([][2]string{
		{"Best day", best},
		{"Average per day", fmt.Sprintf("%.1f", r.Performance.AvgPerDay)},
		{"Completion rate", fmt.Sprintf("%d%%", r.Performance.CompletionRate)},
	})
	pp.NewLine()

	pp.Title("Moods")
	if len(r.MoodDistribution) == 0 {
		pp.Empty("Log moods to see distribution")
	} else {
		rows := make([][2]string, 0, len(r.MoodDistribution))
		for _, m := range r.MoodDistribution {
			g := glyph.Mood(m.Mood)
			rows = append(rows, [2]string{g.Symbol + " " + g.Meaning, fmt.Sprint(m.Count)})
		}
		pp.Table(rows)
		pp.NewLine()
	}

	pp.Title("Energy")
	if r.EnergyTrend == nil {
		pp.Empty(insights.EmptyEnergy)
	} else {
		rows := make([][2]string, 0, len(r.EnergyTrend))
		for _, p := range r.EnergyTrend {
			v := color.New(color.Faint).Sprint("-")
			if p.Level != nil {
				v = fmt.Sprintf("%s %d", Bar(*p.Level*10, 10), *p.Level)
			}
			rows = append(rows, [2]string{DayLabel(p.Day), v})
		}
		pp.Table(rows)
		pp.NewLine()
	}

	pp.Title("Goals")
	if len(r.Goals) == 0 {
		pp.Empty(insights.EmptyGoals)
		return
	}
	rows := make([][2]string, 0, len(r.Goals))
	for _, g := range r.Goals {
		rows = append(rows, [2]string{g.Title, fmt.Sprintf("%s %d%%", Bar(g.Percent, 20), g.Percent)})
	}
	pp.Table(rows)
	pp.NewLine()
}
