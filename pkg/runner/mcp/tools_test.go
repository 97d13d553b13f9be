package mcp

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/store"
)

type harness struct {
	svc   *Service
	tools map[string]server.ServerTool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.Local)
	a, err := app.Open(context.Background(), app.Options{
		Store: store.NewMemory(),
		Now:   func() time.Time { return now },
	})
	require.NoError(t, err)

	h := &harness{svc: NewService(a), tools: map[string]server.ServerTool{}}
	for _, st := range tools(h.svc) {
		h.tools[st.Tool.Name] = st
	}
	return h
}

// call runs a tool and returns its text content and whether it failed.
func (h *harness) call(t *testing.T, name string, args map[string]any) (string, bool) {
	t.Helper()
	st, ok := h.tools[name]
	require.True(t, ok, "tool %q not registered", name)

	res, err := st.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "unexpected content %T", res.Content[0])
	return text.Text, res.IsError
}

func (h *harness) decode(t *testing.T, name string, args map[string]any, into any) {
	t.Helper()
	text, failed := h.call(t, name, args)
	require.False(t, failed, "%s failed: %s", name, text)
	require.NoError(t, sonic.UnmarshalString(text, into))
}

func TestToolsRegistered(t *testing.T) {
	h := newHarness(t)
	for _, name := range []string{
		"add_todo", "toggle_todo", "delete_todo", "list_todos",
		"add_habit", "complete_habit", "delete_habit", "list_habits",
		"log_mood", "log_energy", "log_gratitude", "set_theme",
		"save_journal", "update_journal", "delete_journal", "set_journal_draft", "list_journal",
		"create_goal", "update_goal", "increment_goal_progress", "toggle_goal_completion",
		"record_weekly_progress", "toggle_milestone", "delete_goal", "list_goals",
		"get_status", "get_insights", "export_data",
	} {
		assert.Contains(t, h.tools, name)
	}
}

func TestTodoToolsAwardOnCompletion(t *testing.T) {
	h := newHarness(t)

	var todo struct {
		ID   int64  `json:"id"`
		Text string `json:"text"`
	}
	h.decode(t, "add_todo", map[string]any{"text": "write tests"}, &todo)
	assert.Equal(t, "write tests", todo.Text)

	var done Mutation
	h.decode(t, "toggle_todo", map[string]any{"id": float64(todo.ID)}, &done)
	require.NotNil(t, done.Award)
	assert.Equal(t, 10, done.Award.XP)

	var reopened Mutation
	h.decode(t, "toggle_todo", map[string]any{"id": float64(todo.ID)}, &reopened)
	assert.Nil(t, reopened.Award)
}

func TestTodoToolsRejectBadInput(t *testing.T) {
	h := newHarness(t)

	tests := map[string]struct {
		tool string
		args map[string]any
		want string
	}{
		"blank todo": {
			tool: "add_todo",
			args: map[string]any{"text": "   "},
		},
		"fractional id": {
			tool: "toggle_todo",
			args: map[string]any{"id": 1.5},
			want: "positive whole number",
		},
		"missing id": {
			tool: "delete_todo",
			args: map[string]any{},
		},
		"unknown todo": {
			tool: "toggle_todo",
			args: map[string]any{"id": float64(99)},
			want: "not found",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			text, failed := h.call(t, tc.tool, tc.args)
			assert.True(t, failed)
			if tc.want != "" {
				assert.Contains(t, text, tc.want)
			}
		})
	}
}

func TestCompleteHabitTwiceSameDay(t *testing.T) {
	h := newHarness(t)

	var habit struct {
		ID int64 `json:"id"`
	}
	h.decode(t, "add_habit", map[string]any{"name": "stretch"}, &habit)

	var first, second struct {
		Changed bool `json:"changed"`
		Habit   struct {
			Streak int `json:"streak"`
		} `json:"habit"`
	}
	h.decode(t, "complete_habit", map[string]any{"id": float64(habit.ID)}, &first)
	h.decode(t, "complete_habit", map[string]any{"id": float64(habit.ID)}, &second)

	assert.True(t, first.Changed)
	assert.Equal(t, 1, first.Habit.Streak)
	assert.False(t, second.Changed)
	assert.Equal(t, 1, second.Habit.Streak)
}

func TestCheckinTools(t *testing.T) {
	h := newHarness(t)

	_, failed := h.call(t, "log_mood", map[string]any{"mood": "amazing"})
	assert.False(t, failed)

	text, failed := h.call(t, "log_energy", map[string]any{"level": float64(11)})
	assert.True(t, failed, text)

	_, failed = h.call(t, "log_energy", map[string]any{"level": float64(7)})
	assert.False(t, failed)

	_, failed = h.call(t, "log_gratitude", map[string]any{"items": []any{"coffee", "", "sun"}})
	assert.False(t, failed)

	_, failed = h.call(t, "set_theme", map[string]any{"theme": "ocean"})
	assert.False(t, failed)

	view, err := h.svc.State(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Moods, 1)
	require.Len(t, view.Energy, 1)
	assert.Equal(t, 7, view.Energy[0].Level)
	require.Len(t, view.Gratitude, 1)
	assert.Equal(t, []string{"coffee", "sun"}, view.Gratitude[0].Items)
	assert.Equal(t, "ocean", string(view.Theme))
}

func TestJournalDraftClearedOnSave(t *testing.T) {
	h := newHarness(t)

	_, failed := h.call(t, "set_journal_draft", map[string]any{"text": "half a thought"})
	require.False(t, failed)
	assert.Equal(t, "half a thought", h.svc.App.JournalDraft(context.Background()))

	var saved Mutation
	h.decode(t, "save_journal", map[string]any{"text": "a whole thought"}, &saved)
	require.NotNil(t, saved.Award)
	assert.Equal(t, 20, saved.Award.XP)
	assert.Empty(t, h.svc.App.JournalDraft(context.Background()))
}

func TestGoalTools(t *testing.T) {
	h := newHarness(t)

	var created struct {
		Item struct {
			ID     int64 `json:"id"`
			Target int   `json:"target"`
		} `json:"item"`
	}
	h.decode(t, "create_goal", map[string]any{
		"title":      "ship it",
		"type":       "milestone",
		"milestones": []any{"design", "build"},
	}, &created)
	id := float64(created.Item.ID)
	assert.Equal(t, 2, created.Item.Target)

	var step struct {
		Item struct {
			Completed           bool  `json:"completed"`
			CompletedMilestones []int `json:"completedMilestones"`
		} `json:"item"`
	}
	h.decode(t, "toggle_milestone", map[string]any{"id": id, "index": float64(0)}, &step)
	assert.Equal(t, []int{0}, step.Item.CompletedMilestones)
	assert.False(t, step.Item.Completed)

	h.decode(t, "toggle_milestone", map[string]any{"id": id, "index": float64(1)}, &step)
	assert.True(t, step.Item.Completed)

	text, failed := h.call(t, "toggle_milestone", map[string]any{"id": id, "index": float64(5)})
	assert.True(t, failed, text)

	var updated struct {
		Item struct {
			Title string `json:"title"`
			Type  string `json:"type"`
		} `json:"item"`
	}
	h.decode(t, "update_goal", map[string]any{"id": id, "title": "ship it twice"}, &updated)
	assert.Equal(t, "ship it twice", updated.Item.Title)
	assert.Equal(t, "milestone", updated.Item.Type)

	var list struct {
		Goals []struct {
			ID int64 `json:"id"`
		} `json:"goals"`
	}
	h.decode(t, "list_goals", map[string]any{"filter": "completed"}, &list)
	require.Len(t, list.Goals, 1)

	_, failed = h.call(t, "delete_goal", map[string]any{"id": id})
	require.False(t, failed)
	h.decode(t, "list_goals", nil, &list)
	assert.Empty(t, list.Goals)
}

func TestCreateGoalRejectsUnknownType(t *testing.T) {
	h := newHarness(t)
	_, failed := h.call(t, "create_goal", map[string]any{"title": "x", "type": "someday"})
	assert.True(t, failed)
}

func TestExportDataPaysBackupXP(t *testing.T) {
	h := newHarness(t)
	before := h.svc.App.Snapshot(context.Background()).Progress.XP

	text, failed := h.call(t, "export_data", nil)
	require.False(t, failed, text)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(text), "{"))
	assert.Contains(t, text, `"exportDate"`)

	after := h.svc.App.Snapshot(context.Background()).Progress.XP
	assert.Equal(t, before+10, after)
}

func TestGoalDetail(t *testing.T) {
	h := newHarness(t)
	var created struct {
		Item struct {
			ID int64 `json:"id"`
		} `json:"item"`
	}
	h.decode(t, "create_goal", map[string]any{"title": "read", "type": "numeric", "target": float64(4)}, &created)

	v, err := h.svc.GoalDetail(context.Background(), strconv.FormatInt(created.Item.ID, 10))
	require.NoError(t, err)
	assert.Equal(t, "read", v.Goal.Title)
	assert.Equal(t, 0, v.Percentage)

	_, err = h.svc.GoalDetail(context.Background(), "one")
	assert.Error(t, err)
}
