package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/lyfocus/pkg/events"
	"tableflip.dev/lyfocus/pkg/state"
)

// ResetSentinel must be typed to confirm a reset.
const ResetSentinel = "DELETE"

// ErrResetAborted is returned when a reset was not fully confirmed.
var ErrResetAborted = errors.New("app: reset aborted")

// Confirmation carries the answers to the reset prompts.
type Confirmation struct {
	First  bool
	Second bool
	Typed  string
}

// Confirmed reports two affirmations plus the typed sentinel.
func (c Confirmation) Confirmed() bool {
	return c.First && c.Second && c.Typed == ResetSentinel
}

// Export writes a backup envelope to w and pays the backup award.
func (s *Service) Export(ctx context.Context, w io.Writer) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	if err := state.Encode(w, state.Export(s.st, now)); err != nil {
		return Outcome{}, err
	}
	return Outcome{Award: s.award(ctx, events.ReasonDataBackup, now)}, nil
}

// Backup writes the same envelope as Export but pays nothing. Unattended
// backups use it.
func (s *Service) Backup(ctx context.Context, w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.today(ctx)
	return state.Encode(w, state.Export(s.st, now))
}

// Import replaces every exported field with the backup read from r. A
// malformed backup is rejected with an *apperr.FormatError and the state
// is left as it was.
func (s *Service) Import(ctx context.Context, r io.Reader) error {
	env, err := state.Decode(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	env.Apply(s.st)
	s.save(ctx, state.ImportedFields...)
	s.today(ctx)
	s.logger.InfoContext(ctx, "backup imported", "version", env.Version, "exported", env.ExportDate)
	return nil
}

// Reset erases every namespaced key and restores the fresh-install state.
// Nothing happens unless c is fully confirmed.
func (s *Service) Reset(ctx context.Context, c Confirmation) error {
	if !c.Confirmed() {
		return ErrResetAborted
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.dirty)
	if err := state.Erase(ctx, s.store, s.ns); err != nil {
		// Some keys may be gone; show what the store now holds.
		s.load(ctx)
		return fmt.Errorf("app: reset: %w", err)
	}
	s.st = state.New()
	s.publish(ctx, events.New(events.KindReset, s.now()))
	s.logger.InfoContext(ctx, "all data erased", "namespace", s.ns)
	return nil
}

// DataStats counts records and measures storage use.
func (s *Service) DataStats(ctx context.Context) (state.DataStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return state.Stats(ctx, s.store, s.ns, s.st)
}
