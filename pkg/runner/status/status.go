package status

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/printers"
	"tableflip.dev/lyfocus/pkg/prompt"
	"tableflip.dev/lyfocus/pkg/quote"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

const layoutUSDay = "Monday, January 2, 2006"

// Status prints the daily overview.
type Status struct {
	Service *app.Service
	// Quote is optional; nil skips the quote line.
	Quote  *quote.Fetcher
	ShowID bool
	Out    io.Writer
}

func (n *Status) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show status, no session")
	}
	st := n.Service.Status(ctx)
	now, err := timeutil.ParseDay(st.Today)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.Title(now.Format(layoutUSDay))
	if n.Quote != nil {
		q := n.Quote.Daily(ctx, now)
		_, _ = color.New(color.Italic).Fprintln(pp.Writer(), q.String())
	}
	pp.NewLine()

	pp.Dashboard(st.Board)
	pp.Table([][2]string{
		{"Tasks completed", fmt.Sprint(st.Summary.TotalCompleted)},
		{"This week", fmt.Sprintf("%d%%", st.Summary.WeeklyProgress)},
		{"Theme", string(st.Theme)},
	})
	pp.NewLine()

	pp.GoalSummary(st.Goals)

	pp.Title("Journal prompt")
	_, _ = fmt.Fprintln(pp.Writer(), prompt.Daily(now))
	return nil
}
