package options

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/apperr"
)

// IDOptions
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.PersistentFlags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each item.")
}

// ParseID reads a numeric item id as printed by --show-id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Invalid("id", "must be a positive number, got "+strconv.Quote(raw))
	}
	return id, nil
}
