package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/commands/options"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/printers"
	"tableflip.dev/lyfocus/pkg/snake"
)

func addGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Create goals and track progress toward them.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listGoals(cmd, goal.FilterActive)
		},
	}

	cmd.AddCommand(
		goalCreate(),
		goalUpdate(),
		goalProgress(),
		goalStep("toggle <id>", "Mark a goal complete, or reopen it.",
			func(ctx context.Context, s *session, id int64, _ []string) (goal.Goal, app.Outcome, error) {
				return s.Service.ToggleGoalCompletion(ctx, id)
			}),
		goalStep("week <id>", "Record one session of a weekly goal.",
			func(ctx context.Context, s *session, id int64, _ []string) (goal.Goal, app.Outcome, error) {
				return s.Service.RecordWeeklyProgress(ctx, id)
			}),
		goalMilestone(),
		goalRemove(),
		goalList(),
	)
	topLevel.AddCommand(cmd)
}

func goalCreate() *cobra.Command {
	o := &options.GoalOptions{}
	intr := &options.InteractiveOptions{}
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a goal.",
		Example: `
lyfocus goal create run 100km --type=numeric --target=100 --unit=km --category=health
lyfocus goal create gym --type=weekly --weekly=3
lyfocus goal create launch the site --type=milestone -m design -m build -m ship --deadline=12/1
lyfocus goal create -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				o.Title = strings.Join(args, " ")
				if intr.Interactive {
					if err := askGoal(o, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
						return err
					}
				}
				spec, err := o.Spec(time.Now())
				if err != nil {
					return err
				}
				g, out, err := s.Service.CreateGoal(ctx, spec)
				if err != nil {
					return err
				}
				return done(cmd, g, out, func(pp *printers.PrettyPrint) {
					pp.Goals(goal.List{g}, time.Now())
				})
			})
		},
	}
	options.AddGoalArgs(cmd, o)
	options.InteractiveArgs(cmd, intr)
	return cmd
}

// askGoal fills o from prompts, keeping anything already given as flags.
func askGoal(o *options.GoalOptions, in io.Reader, out io.Writer) error {
	var err error
	if o.Title == "" {
		if o.Title, err = snake.Text("Title:", nonEmpty, in, out); err != nil {
			return err
		}
	}
	types := make([]string, 0, len(goal.AllTypes()))
	for _, t := range goal.AllTypes() {
		types = append(types, string(t))
	}
	if o.Type, err = snake.Choose("Type", types, in, out); err != nil {
		return err
	}
	switch goal.Type(o.Type) {
	case goal.TypeNumeric, goal.TypeHabit:
		if o.Target, err = snake.Number("Target:", o.Target, in, out); err != nil {
			return err
		}
		if o.Unit, err = snake.Text("Unit:", nil, in, out); err != nil {
			return err
		}
	case goal.TypeWeekly:
		if o.WeeklyTarget, err = snake.Number("Sessions per week:", max(o.WeeklyTarget, 1), in, out); err != nil {
			return err
		}
	case goal.TypeMilestone:
		for len(o.Milestones) == 0 {
			step, err := snake.Text("Milestones, separated by commas:", nonEmpty, in, out)
			if err != nil {
				return err
			}
			for _, m := range strings.Split(step, ",") {
				if m = strings.TrimSpace(m); m != "" {
					o.Milestones = append(o.Milestones, m)
				}
			}
		}
	}
	categories := make([]string, 0, len(goal.AllCategories()))
	for _, c := range goal.AllCategories() {
		categories = append(categories, string(c))
	}
	if o.Category, err = snake.Choose("Category", categories, in, out); err != nil {
		return err
	}
	if o.Deadline == "" {
		if o.Deadline, err = snake.Text("Deadline (optional, YYYY-M-D or M/D):", nil, in, out); err != nil {
			return err
		}
	}
	return nil
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func goalUpdate() *cobra.Command {
	o := &options.GoalOptions{}
	cmd := &cobra.Command{
		Use:               "update <id> [title]",
		Short:             "Change a goal. Only the flags given are changed; progress is kept.",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: idCompletions("goal"),
		Example: `
lyfocus goal update 1718200000000 --target=150
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				current, err := s.Service.Goal(ctx, id)
				if err != nil {
					return err
				}
				spec, err := mergeSpec(current.Spec(), o, args[1:], cmd.Flags().Changed)
				if err != nil {
					return err
				}
				g, out, err := s.Service.UpdateGoal(ctx, id, spec)
				if err != nil {
					return err
				}
				return done(cmd, g, out, func(pp *printers.PrettyPrint) {
					pp.Goals(goal.List{g}, time.Now())
				})
			})
		},
	}
	options.AddGoalArgs(cmd, o)
	return cmd
}

// mergeSpec overlays the flags that were set onto spec.
func mergeSpec(spec goal.Spec, o *options.GoalOptions, title []string, changed func(string) bool) (goal.Spec, error) {
	if len(title) > 0 {
		o.Title = strings.Join(title, " ")
	} else {
		o.Title = spec.Title
	}
	if !changed("description") {
		o.Description = spec.Description
	}
	if !changed("type") {
		o.Type = string(spec.Type)
	}
	if !changed("target") {
		o.Target = spec.Target
	}
	if !changed("unit") {
		o.Unit = spec.Unit
	}
	if !changed("category") {
		o.Category = string(spec.Category)
	}
	if !changed("weekly") {
		o.WeeklyTarget = spec.WeeklyTarget
	}
	if !changed("milestone") {
		o.Milestones = spec.Milestones
	}
	if !changed("deadline") {
		o.Deadline = spec.Deadline
	}
	return o.Spec(time.Now())
}

func goalProgress() *cobra.Command {
	return goalStep("progress <id> <amount>", "Add progress to a goal. Weekly goals use week, milestone goals use milestone.",
		func(ctx context.Context, s *session, id int64, rest []string) (goal.Goal, app.Outcome, error) {
			if len(rest) != 1 {
				return goal.Goal{}, app.Outcome{}, errors.New("requires the amount to add")
			}
			amount, err := strconv.ParseFloat(rest[0], 64)
			if err != nil {
				return goal.Goal{}, app.Outcome{}, apperr.Invalid("amount", "must be a number")
			}
			return s.Service.IncrementProgress(ctx, id, amount)
		})
}

func goalMilestone() *cobra.Command {
	return goalStep("milestone <id> <index>", "Check or uncheck a milestone, by the index shown in goal ls.",
		func(ctx context.Context, s *session, id int64, rest []string) (goal.Goal, app.Outcome, error) {
			if len(rest) != 1 {
				return goal.Goal{}, app.Outcome{}, errors.New("requires the milestone index")
			}
			index, err := strconv.Atoi(rest[0])
			if err != nil {
				return goal.Goal{}, app.Outcome{}, apperr.Invalid("index", "must be a whole number")
			}
			return s.Service.ToggleMilestone(ctx, id, index)
		})
}

// goalStep builds a subcommand that takes a goal id, runs fn and prints the
// updated goal with whatever XP it paid.
func goalStep(use, short string, fn func(ctx context.Context, s *session, id int64, rest []string) (goal.Goal, app.Outcome, error)) *cobra.Command {
	return &cobra.Command{
		Use:               use,
		Short:             short,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: idCompletions("goal"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				g, o, err := fn(ctx, s, id, args[1:])
				if err != nil {
					return err
				}
				return done(cmd, g, o, func(pp *printers.PrettyPrint) {
					pp.Goals(goal.List{g}, time.Now())
				})
			})
		},
	}
}

func goalRemove() *cobra.Command {
	return &cobra.Command{
		Use:               "rm <id>",
		Short:             "Delete a goal.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions("goal"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				return s.Service.DeleteGoal(ctx, id)
			})
		},
	}
}

func goalList() *cobra.Command {
	filter := string(goal.FilterActive)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List goals.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := goal.Filter(strings.ToLower(filter))
			switch f {
			case goal.FilterAll, goal.FilterActive, goal.FilterCompleted:
			default:
				return apperr.Invalid("filter", "use all, active or completed")
			}
			return listGoals(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", filter, "Which goals to show: all, active or completed.")
	return cmd
}

func listGoals(cmd *cobra.Command, f goal.Filter) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		goals := s.Service.Goals(ctx, f)
		stats := s.Service.GoalStats(ctx)
		return show(cmd, map[string]any{"goals": goals, "stats": stats}, func(pp *printers.PrettyPrint) {
			pp.Goals(goals, time.Now())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d total · %d active · %d completed\n", stats.Total, stats.Active, stats.Completed)
		})
	})
}
