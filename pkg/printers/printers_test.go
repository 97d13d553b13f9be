package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/events"
	"tableflip.dev/lyfocus/pkg/gamify"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/insights"
)

func init() {
	color.NoColor = true
}

var now = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.Local)

func TestBar(t *testing.T) {
	tests := map[int]string{
		0:   "░░░░░",
		40:  "██░░░",
		100: "█████",
		250: "█████",
		-5:  "░░░░░",
	}
	for pct, want := range tests {
		if got := Bar(pct, 5); got != want {
			t.Errorf("Bar(%d) = %q, want %q", pct, got, want)
		}
	}
}

func TestGoalsCard(t *testing.T) {
	var goals goal.List
	if _, _, err := goals.Create(goal.Spec{Title: "Ship", Type: goal.TypeMilestone, Milestones: []string{"design", "build"}, Deadline: "2026-10-17"}, now); err != nil {
		t.Fatal(err)
	}
	if _, _, err := goals.ToggleMilestone(goals[0].ID, 0, now); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Goals(goals, now)

	out := buf.String()
	for _, want := range []string{"Ship", " 50%", "1 / 2 milestones", "☑ 0. design", "☐ 1. build", "3 days left"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHeatmapStartsOnWeekday(t *testing.T) {
	// 2026-10-14 is a Wednesday: three blank cells lead the first row.
	h := &insights.Heatmap{Cells: []insights.Cell{
		{Day: "2026-10-14", Score: 9, Level: 4},
		{Day: "2026-10-15", Score: 0, Level: 0},
	}}
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Heatmap(h)
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[1], "         █") {
		t.Fatalf("unexpected grid:\n%s", buf.String())
	}
}

func TestReportEmptyStates(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Report(insights.Build(insights.Snapshot{Now: now}))
	for _, want := range []string{insights.EmptyWeekly, insights.EmptyHeatmap, insights.EmptyInsights, insights.EmptyEnergy, insights.EmptyGoals} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing empty state %q", want)
		}
	}
}

func TestTodosAndJournal(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 20}
	pp.Todos(activity.Todos{{ID: 1, Text: "open one"}, {ID: 2, Text: "done", Completed: true}})
	pp.Journal(activity.Journal{{ID: 3, Text: "a fairly long line of journal text", Date: now}})
	out := buf.String()
	if !strings.Contains(out, "Todos - 1 open task\n") {
		t.Errorf("todo title:\n%s", out)
	}
	if !strings.Contains(out, "a fairly long line\nof journal text") {
		t.Errorf("journal text not wrapped:\n%s", out)
	}
}

func TestAward(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Award(nil)
	if buf.Len() != 0 {
		t.Fatalf("nil award printed %q", buf.String())
	}
	pp.Award(&gamify.Result{Reason: events.ReasonJournalSaved, XP: 20, LeveledUp: true, Level: gamify.LevelByNumber(2)})
	got := buf.String()
	for _, want := range []string{"+20 XP", "journal", "Level up! You are now level 2, Beginner."} {
		if !strings.Contains(got, want) {
			t.Errorf("award output %q missing %q", got, want)
		}
	}
}

func TestLevelAtTop(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Level(gamify.Progress(20000))
	got := buf.String()
	if !strings.Contains(got, "Level 10 Legendary") {
		t.Fatalf("got %q", got)
	}
	if strings.Contains(got, " to ") {
		t.Fatalf("top level should not name a next level: %q", got)
	}
}
