package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/commands/options"
	"tableflip.dev/lyfocus/pkg/glyph"
	"tableflip.dev/lyfocus/pkg/printers"
)

func addHabit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Track daily habits and their streaks.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listHabits(cmd)
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Start tracking a habit.",
		Example: `
lyfocus habit add read 20 pages
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the habit name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				h, err := s.Service.AddHabit(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return show(cmd, h, func(pp *printers.PrettyPrint) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d)\n", glyph.Open, h.Name, h.ID)
				})
			})
		},
	}

	complete := &cobra.Command{
		Use:               "done <id>",
		Short:             "Mark a habit done for today.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions("habit"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				h, changed, o, err := s.Service.CompleteHabit(ctx, id)
				if err != nil {
					return err
				}
				return done(cmd, h, o, func(pp *printers.PrettyPrint) {
					if !changed {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s already done today\n", h.Name)
						return
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %d\n", glyph.HabitDone, h.Name, glyph.Streak, h.Streak)
				})
			})
		},
	}

	rm := &cobra.Command{
		Use:               "rm <id>",
		Short:             "Stop tracking a habit.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions("habit"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				return s.Service.DeleteHabit(ctx, id)
			})
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List habits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listHabits(cmd)
		},
	}

	cmd.AddCommand(add, complete, rm, ls)
	topLevel.AddCommand(cmd)
}

func listHabits(cmd *cobra.Command) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		habits := s.Service.Habits(ctx)
		return show(cmd, habits, func(pp *printers.PrettyPrint) {
			pp.Habits(habits)
		})
	})
}
