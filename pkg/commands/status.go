package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/quote"
	"tableflip.dev/lyfocus/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	var noQuote bool
	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"today"},
		Short:   "Show today's dashboard, streaks, level and active goals.",
		Example: `
lyfocus status
lyfocus status --no-quote
lyfocus status --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if output.JSON {
					return output.Print(cmd.OutOrStdout(), s.Service.Status(ctx))
				}
				r := status.Status{
					Service: s.Service,
					ShowID:  ids.ShowID,
					Out:     cmd.OutOrStdout(),
				}
				if !noQuote {
					r.Quote = quote.New(s.Settings.QuoteURL, s.Settings.QuoteTimeout, s.Store, s.Service.Namespace(), s.Logger)
				}
				return r.Do(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&noQuote, "no-quote", false, "Skip the daily quote.")

	topLevel.AddCommand(cmd)
}
