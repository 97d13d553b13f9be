package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about where data is stored and which services are on.",
		Example: `
lyfocus info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := info.Info{
					Settings: s.Settings,
					Service:  s.Service,
					Out:      cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
