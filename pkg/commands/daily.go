package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/printers"
	"tableflip.dev/lyfocus/pkg/prompt"
	"tableflip.dev/lyfocus/pkg/quote"
	"tableflip.dev/lyfocus/pkg/state"
)

func addTheme(topLevel *cobra.Command) {
	themes := make([]string, 0, len(state.AllThemes()))
	for _, t := range state.AllThemes() {
		themes = append(themes, string(t))
	}
	cmd := &cobra.Command{
		Use:       "theme [name]",
		Short:     "Show or change the dashboard theme.",
		ValidArgs: themes,
		Args:      cobra.MaximumNArgs(1),
		Example: `
lyfocus theme
lyfocus theme ocean
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if len(args) == 1 {
					t, err := state.ParseTheme(args[0])
					if err != nil {
						return err
					}
					if err := s.Service.SetTheme(ctx, t); err != nil {
						return err
					}
				}
				current := s.Service.Theme(ctx)
				return show(cmd, map[string]any{"theme": current, "themes": state.AllThemes()}, func(pp *printers.PrettyPrint) {
					for _, t := range state.AllThemes() {
						mark := " "
						if t == current {
							mark = color.GreenString("●")
						}
						_, _ = fmt.Fprintf(pp.Writer(), "%s %s\n", mark, t)
					}
				})
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addPrompt(topLevel *cobra.Command) {
	var random bool
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Show today's journal prompt.",
		Example: `
lyfocus prompt
lyfocus prompt --random
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := prompt.Daily(time.Now())
			if random {
				p = prompt.Random()
			}
			return show(cmd, map[string]string{"prompt": p}, func(pp *printers.PrettyPrint) {
				_, _ = fmt.Fprintln(pp.Writer(), p)
			})
		},
	}
	cmd.Flags().BoolVarP(&random, "random", "r", false, "Pick a random prompt instead of today's.")

	topLevel.AddCommand(cmd)
}

func addQuote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Show the quote of the day.",
		Example: `
lyfocus quote
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				f := quote.New(s.Settings.QuoteURL, s.Settings.QuoteTimeout, s.Store, s.Service.Namespace(), s.Logger)
				q := f.Daily(ctx, time.Now())
				return show(cmd, q, func(pp *printers.PrettyPrint) {
					_, _ = color.New(color.Italic).Fprintln(pp.Writer(), q.String())
				})
			})
		},
	}

	topLevel.AddCommand(cmd)
}
