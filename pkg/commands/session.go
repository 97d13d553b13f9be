package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/config"
	"tableflip.dev/lyfocus/pkg/events"
	"tableflip.dev/lyfocus/pkg/gamify"
	"tableflip.dev/lyfocus/pkg/printers"
	"tableflip.dev/lyfocus/pkg/store"
)

// session is everything one command invocation needs.
type session struct {
	Settings *config.Settings
	Logger   *slog.Logger
	Store    store.Persistence
	Service  *app.Service

	closers []io.Closer
}

// openSession loads config, opens the store and starts the app session.
func openSession(ctx context.Context) (*session, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := settings.Logger(os.Stderr)
	slog.SetDefault(logger)

	p, err := store.Load(ctx, settings.Store)
	if err != nil {
		return nil, err
	}
	s := &session{Settings: settings, Logger: logger, Store: p, closers: []io.Closer{p}}

	sinks := []events.Sink{events.LogSink{Logger: logger}}
	if len(settings.KafkaBrokers) > 0 {
		k := events.NewKafkaSink(settings.KafkaBrokers, settings.KafkaTopic)
		sinks = append(sinks, k)
		s.closers = append(s.closers, k)
	}

	s.Service, err = app.Open(ctx, app.Options{
		Store:     p,
		Namespace: settings.Store.Namespace,
		Events:    events.Multi(sinks...),
		Logger:    logger,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			s.Logger.Warn("close failed", "error", err)
		}
	}
}

// withSession runs fn against a fresh session and routes its error through
// the output options.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cmd.SilenceUsage = true
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx)
	if err != nil {
		return output.HandleError(err)
	}
	defer s.Close()
	return output.HandleError(fn(ctx, s))
}

// show prints v as JSON when --json is set, otherwise runs pretty.
func show(cmd *cobra.Command, v any, pretty func(pp *printers.PrettyPrint)) error {
	if output.JSON {
		return output.Print(cmd.OutOrStdout(), v)
	}
	pretty(&printers.PrettyPrint{Out: cmd.OutOrStdout(), ShowID: ids.ShowID})
	return nil
}

// result is the JSON shape of a mutation.
type result struct {
	Item  any            `json:"item,omitempty"`
	Award *gamify.Result `json:"award,omitempty"`
}

// done reports a mutation: the item and award as JSON, or pretty followed
// by the award line.
func done(cmd *cobra.Command, item any, o app.Outcome, pretty func(pp *printers.PrettyPrint)) error {
	if output.JSON {
		return output.Print(cmd.OutOrStdout(), result{Item: item, Award: o.Award})
	}
	pp := &printers.PrettyPrint{Out: cmd.OutOrStdout(), ShowID: ids.ShowID}
	if pretty != nil {
		pretty(pp)
	}
	pp.Award(o.Award)
	return nil
}
