package reset

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/snake"
)

const (
	firstLabel  = "⚠️ WARNING: This will delete ALL your data permanently. Are you sure"
	secondLabel = "🚨 LAST CHANCE: This action cannot be undone. Delete everything"
	typedLabel  = `Type "` + app.ResetSentinel + `" to confirm permanent deletion:`
)

// Reset erases every record after three confirmations on the terminal.
type Reset struct {
	Service *app.Service
	In      io.Reader
	Out     io.Writer

	// Confirm and Text answer the questions; nil asks on In and Out.
	Confirm func(label string) (bool, error)
	Text    func(label string) (string, error)
}

func (n *Reset) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not reset, no session")
	}
	c, err := n.ask()
	if err != nil {
		return err
	}
	err = n.Service.Reset(ctx, c)
	if errors.Is(err, app.ErrResetAborted) {
		_, _ = fmt.Fprintln(n.Out, "Reset cancelled, nothing was deleted.")
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(n.Out, "All data has been cleared.")
	return nil
}

// ask stops at the first answer that is not a yes.
func (n *Reset) ask() (app.Confirmation, error) {
	confirm, text := n.Confirm, n.Text
	if confirm == nil {
		confirm = func(label string) (bool, error) { return snake.Confirm(label, n.In, n.Out) }
	}
	if text == nil {
		text = func(label string) (string, error) { return snake.Text(label, nil, n.In, n.Out) }
	}
	var c app.Confirmation
	var err error
	if c.First, err = confirm(firstLabel); err != nil || !c.First {
		return c, err
	}
	if c.Second, err = confirm(secondLabel); err != nil || !c.Second {
		return c, err
	}
	c.Typed, err = text(typedLabel)
	return c, err
}
