package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/runner/export"
	"tableflip.dev/lyfocus/pkg/runner/importer"
	"tableflip.dev/lyfocus/pkg/runner/reset"
	"tableflip.dev/lyfocus/pkg/snake"
)

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export [file|dir|-]",
		Short: "Write a backup of all data as JSON.",
		Long: `Write a backup of all data as JSON. With no argument the backup is named
after today's date and written to the working directory. Use - to write to
stdout.`,
		Args: cobra.MaximumNArgs(1),
		Example: `
lyfocus export
lyfocus export ~/backups
lyfocus export - > backup.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := export.Export{
					Service: s.Service,
					Out:     cmd.OutOrStdout(),
				}
				if len(args) > 0 {
					r.Path = args[0]
				}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a backup written by export.",
		Args:  cobra.ExactArgs(1),
		Example: `
lyfocus import lyfocus-backup-2024-03-01.json
lyfocus import backup.json --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := importer.Importer{
					Service: s.Service,
					Path:    args[0],
					Out:     cmd.OutOrStdout(),
				}
				if !yes {
					r.Confirm = func(label string) (bool, error) {
						return snake.Confirm(label, cmd.InOrStdin(), cmd.OutOrStdout())
					}
				}
				return r.Do(ctx)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")

	topLevel.AddCommand(cmd)
}

func addReset(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Permanently delete all data.",
		Long: `Permanently delete all data. You are asked twice and then need to type
DELETE; any other answer leaves everything as it was.`,
		Example: `
lyfocus export && lyfocus reset
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := reset.Reset{
					Service: s.Service,
					In:      cmd.InOrStdin(),
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
