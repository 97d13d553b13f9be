package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/printers"
	"tableflip.dev/lyfocus/pkg/state"
)

// Stdout as Path writes the backup to Out instead of a file.
const Stdout = "-"

// Export writes a backup file.
type Export struct {
	Service *app.Service
	// Path is the target file or directory. Empty means a dated file in
	// the working directory.
	Path string
	Now  func() time.Time
	Out  io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no session")
	}
	if n.Path == Stdout {
		_, err := n.Service.Export(ctx, n.Out)
		return err
	}

	path := n.target()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	o, err := n.Service.Export(ctx, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out}
	_, _ = fmt.Fprintf(pp.Writer(), "Data exported to %s\n", path)
	pp.Award(o.Award)
	return nil
}

func (n *Export) target() string {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	name := state.BackupName(now())
	if n.Path == "" {
		return name
	}
	if fi, err := os.Stat(n.Path); err == nil && fi.IsDir() {
		return filepath.Join(n.Path, name)
	}
	return n.Path
}
