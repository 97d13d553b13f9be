package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/commands/options"
	"tableflip.dev/lyfocus/pkg/runner/insights"
)

func addInsights(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Analyze streaks, habits, moods and goals.",
		Example: `
lyfocus insights
lyfocus insights --last=8w
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				days, err := wo.Days()
				if err != nil {
					return err
				}
				r := insights.Insights{
					Service: s.Service,
					Days:    days,
					Out:     cmd.OutOrStdout(),
				}
				if output.JSON {
					rep, err := r.Report(ctx)
					if err != nil {
						return err
					}
					return output.Print(cmd.OutOrStdout(), rep)
				}
				return r.Do(ctx)
			})
		},
	}
	options.AddWindowArgs(cmd, wo, "4w")

	topLevel.AddCommand(cmd)
}
