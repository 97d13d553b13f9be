package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/glyph"
	"tableflip.dev/lyfocus/pkg/printers"
)

func addMood(topLevel *cobra.Command) {
	moods := make([]string, 0, 5)
	for _, m := range activity.AllMoods() {
		moods = append(moods, string(m))
	}
	cmd := &cobra.Command{
		Use:       "mood [" + strings.Join(moods, "|") + "]",
		Short:     "Log today's mood, or show recent moods.",
		ValidArgs: moods,
		Args:      cobra.MaximumNArgs(1),
		Example: `
lyfocus mood good
lyfocus mood
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if len(args) == 0 {
					log := s.Service.Snapshot(ctx).Log
					return show(cmd, log.Moods, func(pp *printers.PrettyPrint) {
						pp.Moods(log.Moods)
					})
				}
				m, err := activity.ParseMood(args[0])
				if err != nil {
					return err
				}
				e, o, err := s.Service.LogMood(ctx, m)
				if err != nil {
					return err
				}
				return done(cmd, e, o, func(pp *printers.PrettyPrint) {
					g := glyph.Mood(e.Mood)
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Feeling %s today\n", g.Symbol, strings.ToLower(g.Meaning))
				})
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addEnergy(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "energy <0-10>",
		Short: "Log today's energy level.",
		Args:  cobra.ExactArgs(1),
		Example: `
lyfocus energy 7
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				level, err := strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil {
					return apperr.Invalid("level", "must be a whole number from 0 to 10")
				}
				e, o, err := s.Service.LogEnergy(ctx, level)
				if err != nil {
					return err
				}
				return done(cmd, e, o, func(pp *printers.PrettyPrint) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "⚡ %s %d/10\n", printers.Bar(e.Level*10, 10), e.Level)
				})
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addGratitude(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "gratitude <item>...",
		Short: "Log up to three things you are grateful for today.",
		Example: `
lyfocus gratitude "morning coffee" "a call with mom"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires at least one item")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				e, o, err := s.Service.LogGratitude(ctx, args)
				if err != nil {
					return err
				}
				return done(cmd, e, o, func(pp *printers.PrettyPrint) {
					for i, it := range e.Items {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, it)
					}
				})
			})
		},
	}

	topLevel.AddCommand(cmd)
}
