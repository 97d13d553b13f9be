package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions, def string) {
	cmd.Flags().StringVar(&o.Last, "last", def,
		`Window to look back over, example: --last=4w or --last=10d.`)
}

// Days parses the window into a day count.
func (o *WindowOptions) Days() (int, error) {
	days, _, err := timeutil.ParseWindow(o.Last)
	return days, err
}
