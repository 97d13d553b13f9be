package state

import (
	"context"
	"fmt"

	"tableflip.dev/lyfocus/pkg/store"
)

// DataStats summarizes what is stored.
type DataStats struct {
	Todos          int `json:"todos"`
	Habits         int `json:"habits"`
	JournalEntries int `json:"journalEntries"`
	Moods          int `json:"moods"`
	Goals          int `json:"goals"`
	// Bytes approximates storage use as the length of every key and value
	// in the namespace.
	Bytes int `json:"bytes"`
}

// Stats counts s and measures what namespace occupies in p.
func Stats(ctx context.Context, p store.Persistence, namespace string, s *State) (DataStats, error) {
	ds := DataStats{
		Todos:          len(s.Todos),
		Habits:         len(s.Habits),
		JournalEntries: len(s.Journal),
		Moods:          len(s.Moods),
		Goals:          len(s.Goals),
	}
	keys, err := p.Keys(ctx, namespace+"_")
	if err != nil {
		return ds, fmt.Errorf("state: stats: %w", err)
	}
	for _, k := range keys {
		v, err := p.Read(ctx, k)
		if err != nil {
			continue
		}
		ds.Bytes += len(k) + len(v)
	}
	return ds, nil
}
