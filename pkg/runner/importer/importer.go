// Package importer restores a backup written by export.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/state"
)

// ConfirmLabel is asked before the current data is replaced.
const ConfirmLabel = "⚠️ This will replace ALL your current data with the backup. Continue"

type Importer struct {
	Service *app.Service
	Path    string
	// Confirm is asked after the file is validated. nil means yes.
	Confirm func(label string) (bool, error)
	Out     io.Writer
}

func (n *Importer) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no session")
	}
	raw, err := os.ReadFile(n.Path)
	if err != nil {
		return err
	}
	env, err := state.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", n.Path, err)
	}
	if n.Confirm != nil {
		ok, err := n.Confirm(ConfirmLabel)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(n.Out, "Import cancelled, nothing was changed.")
			return nil
		}
	}
	if err := n.Service.Import(ctx, bytes.NewReader(raw)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(n.Out, "Data imported from %s (version %s, exported %s).\n",
		n.Path, env.Version, env.ExportDate.Local().Format("2006-01-02 15:04"))
	return nil
}
