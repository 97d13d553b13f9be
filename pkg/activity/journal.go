package activity

import (
	"strings"
	"time"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// JournalEntry is a saved reflection. Date is when it was written.
type JournalEntry struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Day is the calendar day of the entry.
func (j JournalEntry) Day() string { return timeutil.Day(j.Date) }

type Journal []JournalEntry

// Add saves a new entry dated now.
func (js *Journal) Add(text string, now time.Time) (JournalEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return JournalEntry{}, apperr.Invalid("text", "required")
	}
	ids := make([]int64, len(*js))
	for i, j := range *js {
		ids[i] = j.ID
	}
	e := JournalEntry{
		ID:        timeutil.StampID(now, ids...),
		Text:      text,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	*js = append(*js, e)
	return e, nil
}

// Update replaces the text of an entry and keeps its date.
func (js Journal) Update(id int64, text string, now time.Time) (JournalEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return JournalEntry{}, apperr.Invalid("text", "required")
	}
	i := js.index(id)
	if i < 0 {
		return JournalEntry{}, apperr.NotFound("journal entry", id)
	}
	js[i].Text = text
	js[i].UpdatedAt = now
	return js[i], nil
}

// Delete removes an entry.
func (js *Journal) Delete(id int64) error {
	i := js.index(id)
	if i < 0 {
		return apperr.NotFound("journal entry", id)
	}
	*js = append((*js)[:i], (*js)[i+1:]...)
	return nil
}

// Since returns entries dated at or after t, oldest first.
func (js Journal) Since(t time.Time) Journal {
	out := make(Journal, 0)
	for _, j := range js {
		if !j.Date.Before(t) {
			out = append(out, j)
		}
	}
	return out
}

func (js Journal) index(id int64) int {
	for i, j := range js {
		if j.ID == id {
			return i
		}
	}
	return -1
}
