// Package schedule writes periodic backups on a cron schedule.
package schedule

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"tableflip.dev/lyfocus/pkg/state"
)

// ExportFunc writes one backup to w.
type ExportFunc func(ctx context.Context, w io.Writer) error

// Backup writes backups into Dir, one file per day.
type Backup struct {
	Dir    string
	Export ExportFunc
	Now    func() time.Time
	Logger *slog.Logger
	// Timeout bounds one run; zero means one minute.
	Timeout time.Duration

	cron *cron.Cron
}

// RunOnce writes today's backup and returns its path. A backup already
// written today is replaced.
func (b *Backup) RunOnce(ctx context.Context) (string, error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return "", fmt.Errorf("schedule: backup dir: %w", err)
	}
	tmp, err := os.CreateTemp(b.Dir, ".backup-*")
	if err != nil {
		return "", fmt.Errorf("schedule: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := b.Export(ctx, tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("schedule: export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("schedule: %w", err)
	}
	path := filepath.Join(b.Dir, state.BackupName(now()))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("schedule: %w", err)
	}
	return path, nil
}

func (b *Backup) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// Start runs RunOnce on spec, a standard five-field cron expression or a
// descriptor such as "@daily".
func (b *Backup) Start(spec string) error {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	b.cron = cron.New()
	_, err := b.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		path, err := b.RunOnce(ctx)
		if err != nil {
			b.logger().Error("scheduled backup failed", slog.Any("error", err))
			return
		}
		b.logger().Info("scheduled backup written", slog.String("path", path))
	})
	if err != nil {
		return fmt.Errorf("schedule: backup spec %q: %w", spec, err)
	}
	b.cron.Start()
	b.logger().Info("backup schedule started", slog.String("spec", spec), slog.String("dir", b.Dir))
	return nil
}

// Stop waits for a running backup to finish.
func (b *Backup) Stop() {
	if b.cron == nil {
		return
	}
	<-b.cron.Stop().Done()
}

// Next is when the next backup runs, or zero before Start.
func (b *Backup) Next() time.Time {
	if b.cron == nil {
		return time.Time{}
	}
	for _, e := range b.cron.Entries() {
		return e.Next
	}
	return time.Time{}
}
