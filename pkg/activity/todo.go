// Package activity holds the raw self-reported records: todos, habits,
// journal entries, moods, energy samples and gratitude lists.
package activity

import (
	"strings"
	"time"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// Todo is a single task.
type Todo struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Day is the calendar day the todo was created.
func (t Todo) Day() string { return timeutil.Day(t.CreatedAt) }

// Todos is the ordered task list, oldest first.
type Todos []Todo

// Add appends a new open todo.
func (ts *Todos) Add(text string, now time.Time) (Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, apperr.Invalid("text", "required")
	}
	ids := make([]int64, len(*ts))
	for i, t := range *ts {
		ids[i] = t.ID
	}
	todo := Todo{ID: timeutil.StampID(now, ids...), Text: text, CreatedAt: now}
	*ts = append(*ts, todo)
	return todo, nil
}

// Toggle flips the completed flag and returns the updated todo.
func (ts Todos) Toggle(id int64) (Todo, error) {
	i := ts.index(id)
	if i < 0 {
		return Todo{}, apperr.NotFound("todo", id)
	}
	ts[i].Completed = !ts[i].Completed
	return ts[i], nil
}

// Delete removes the todo.
func (ts *Todos) Delete(id int64) error {
	i := ts.index(id)
	if i < 0 {
		return apperr.NotFound("todo", id)
	}
	*ts = append((*ts)[:i], (*ts)[i+1:]...)
	return nil
}

// Get returns the todo with id.
func (ts Todos) Get(id int64) (Todo, bool) {
	if i := ts.index(id); i >= 0 {
		return ts[i], true
	}
	return Todo{}, false
}

// Completed counts finished todos.
func (ts Todos) Completed() int {
	n := 0
	for _, t := range ts {
		if t.Completed {
			n++
		}
	}
	return n
}

func (ts Todos) index(id int64) int {
	for i, t := range ts {
		if t.ID == id {
			return i
		}
	}
	return -1
}
