package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// GoalOptions holds the flags that make up a goal spec.
type GoalOptions struct {
	Title        string
	Description  string
	Type         string
	Target       int
	Unit         string
	Deadline     string
	Category     string
	WeeklyTarget int
	Milestones   []string
}

func AddGoalArgs(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer description of the goal.")
	cmd.Flags().StringVarP(&o.Type, "type", "t", string(goal.TypeNumeric),
		"Goal type: numeric, habit, deadline, weekly, yes-no, percentage or milestone.")
	cmd.Flags().IntVar(&o.Target, "target", 0,
		"Target value. Deadline and milestone goals set their own.")
	cmd.Flags().StringVar(&o.Unit, "unit", "",
		"Unit for numeric and habit goals, example: --unit=km.")
	cmd.Flags().StringVar(&o.Deadline, "deadline", "",
		`Deadline, example: --deadline="2020-2-28" or --deadline="2/28".`)
	cmd.Flags().StringVarP(&o.Category, "category", "c", string(goal.CategoryOther),
		"Category: health, learning, career, relationships, creativity, personal or other.")
	cmd.Flags().IntVar(&o.WeeklyTarget, "weekly", 0,
		"Sessions per week for weekly goals.")
	cmd.Flags().StringArrayVarP(&o.Milestones, "milestone", "m", nil,
		"Milestone step, repeat for each one in order.")
}

// Spec builds a goal spec from the flags. now anchors short deadlines.
func (o *GoalOptions) Spec(now time.Time) (goal.Spec, error) {
	t, err := goal.ParseType(o.Type)
	if err != nil {
		return goal.Spec{}, err
	}
	deadline, err := ParseDeadline(o.Deadline, now)
	if err != nil {
		return goal.Spec{}, err
	}
	return goal.Spec{
		Title:        strings.TrimSpace(o.Title),
		Description:  strings.TrimSpace(o.Description),
		Type:         t,
		Target:       o.Target,
		Unit:         strings.TrimSpace(o.Unit),
		Deadline:     deadline,
		Category:     goal.Category(strings.ToLower(strings.TrimSpace(o.Category))),
		WeeklyTarget: o.WeeklyTarget,
		Milestones:   o.Milestones,
	}, nil
}

// ParseDeadline accepts "2020-2-28" or "2/28" and returns a calendar day.
// A month/day already past this year means next year.
func ParseDeadline(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	t, err := time.ParseInLocation(layoutISO, raw, now.Location())
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, raw, now.Location())
		if err != nil {
			return "", apperr.Invalid("deadline", "use YYYY-M-D or M/D")
		}
		t = t.AddDate(now.Year(), 0, 0)
		if t.Before(timeutil.StartOfDay(now)) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return timeutil.Day(t), nil
}
