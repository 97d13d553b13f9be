package insights

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/insights"
	"tableflip.dev/lyfocus/pkg/printers"
)

// Insights prints the analytics report.
type Insights struct {
	Service *app.Service
	// Days is the heatmap window; zero means insights.HeatmapDays.
	Days int
	Out  io.Writer
}

// Report builds the report with the configured heatmap window.
func (n *Insights) Report(ctx context.Context) (insights.Report, error) {
	if n.Service == nil {
		return insights.Report{}, errors.New("can not build insights, no session")
	}
	snap := n.Service.Snapshot(ctx)
	r := insights.Build(snap)
	if n.Days > 0 && n.Days != insights.HeatmapDays {
		r.Heatmap = insights.HeatmapFor(snap.Log, snap.Now, n.Days)
	}
	return r, nil
}

func (n *Insights) Do(ctx context.Context) error {
	r, err := n.Report(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Report(r)
	return nil
}
