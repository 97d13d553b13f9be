package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/config"
	"tableflip.dev/lyfocus/pkg/printers"
	"tableflip.dev/lyfocus/pkg/store"
)

type Info struct {
	Settings *config.Settings
	Service  *app.Service
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: n.Out}
	w := pp.Writer()

	if override := os.Getenv("LYFOCUS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "LYFOCUS_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(w, "LYFOCUS_CONFIG_PATH env var not set")
	}

	if n.Settings == nil {
		var err error
		n.Settings, err = config.Load()
		if err != nil {
			return err
		}
	}
	if n.Service == nil {
		return errors.New("failed to open the lyfocus session")
	}
	pp.NewLine()

	cfg := n.Settings.Store
	pp.Title("Storage")
	rows := [][2]string{
		{"Backend", cfg.Backend},
		{"Namespace", cfg.Namespace},
	}
	switch cfg.Backend {
	case "", store.BackendDiskv:
		rows = append(rows, [2]string{"Path", cfg.Path})
	case store.BackendSQLite:
		rows = append(rows, [2]string{"Path", cfg.SQLitePath})
	case store.BackendRedis:
		rows = append(rows, [2]string{"Address", cfg.RedisAddr})
	}
	pp.Table(rows)
	pp.NewLine()

	stats, err := n.Service.DataStats(ctx)
	if err != nil {
		return err
	}
	pp.Title("Data")
	pp.Table([][2]string{
		{"Todos", fmt.Sprint(stats.Todos)},
		{"Habits", fmt.Sprint(stats.Habits)},
		{"Journal entries", fmt.Sprint(stats.JournalEntries)},
		{"Moods", fmt.Sprint(stats.Moods)},
		{"Goals", fmt.Sprint(stats.Goals)},
		{"Storage used", humanize.Bytes(uint64(stats.Bytes))},
	})
	pp.NewLine()

	pp.Title("Services")
	kafka := "off"
	if len(n.Settings.KafkaBrokers) > 0 {
		kafka = strings.Join(n.Settings.KafkaBrokers, ",") + " → " + n.Settings.KafkaTopic
	}
	backup := "off"
	if n.Settings.BackupSchedule != "" {
		backup = n.Settings.BackupSchedule + " → " + n.Settings.BackupDir
	}
	pp.Table([][2]string{
		{"Events", kafka},
		{"Backups", backup},
		{"Quotes", n.Settings.QuoteURL},
	})
	return nil
}
