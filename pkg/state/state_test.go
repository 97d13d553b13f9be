package state

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/store"
)

const ns = "lyfocus"

var now = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.Local)

func populated(t *testing.T) *State {
	t.Helper()
	s := New()
	_, err := s.Todos.Add("write report", now)
	require.NoError(t, err)
	_, err = s.Habits.Add("stretch", now)
	require.NoError(t, err)
	_, err = s.Journal.Add("good day", now)
	require.NoError(t, err)
	_, err = s.Moods.Log(activity.MoodGood, now)
	require.NoError(t, err)
	_, err = s.Energy.Log(7, now)
	require.NoError(t, err)
	_, err = s.Gratitude.Log([]string{"coffee"}, now)
	require.NoError(t, err)
	_, _, err = s.Goals.Create(goal.Spec{Title: "Read", Type: goal.TypeNumeric, Target: 12, Unit: "books"}, now)
	require.NoError(t, err)
	s.Progress.XP = 260
	s.Progress.Level = 3
	s.Progress.CurrentStreak = 4
	s.Progress.LongestStreak = 9
	s.Progress.LastActiveDate = "2026-10-18"
	s.Theme = ThemeOcean
	s.JournalDraft = "half a thought"
	s.LastLogin = "2026-10-18"
	return s
}

func TestLoadEmptyStoreGivesDefaults(t *testing.T) {
	s, warnings := Load(context.Background(), store.NewMemory(), ns)
	assert.Empty(t, warnings)
	assert.Equal(t, New(), s)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemory()
	want := populated(t)

	require.Empty(t, Save(ctx, p, ns, want, AllFields()...))
	got, warnings := Load(ctx, p, ns)
	require.Empty(t, warnings)

	assert.Equal(t, want.Progress, got.Progress)
	assert.Equal(t, want.Theme, got.Theme)
	assert.Equal(t, want.JournalDraft, got.JournalDraft)
	assert.Equal(t, want.LastLogin, got.LastLogin)
	require.Len(t, got.Goals, 1)
	assert.Equal(t, want.Goals[0].ID, got.Goals[0].ID)
	assert.Equal(t, 12, got.Goals[0].Target)
	require.Len(t, got.Todos, 1)
	assert.Equal(t, "write report", got.Todos[0].Text)
	assert.True(t, got.Todos[0].CreatedAt.Equal(now))
}

func TestLastActiveDateNullWhenUnset(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemory()
	require.Empty(t, Save(ctx, p, ns, New(), FieldLastActiveDate))

	raw, err := p.Read(ctx, "lyfocus_lastActiveDate")
	require.NoError(t, err)
	assert.Equal(t, "null", raw)

	s, warnings := Load(ctx, p, ns)
	assert.Empty(t, warnings)
	assert.Equal(t, "", s.Progress.LastActiveDate)
}

func TestCorruptFieldFallsBackAlone(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemory()
	want := populated(t)
	require.Empty(t, Save(ctx, p, ns, want, AllFields()...))
	require.NoError(t, p.Write(ctx, "lyfocus_habits", "{not json"))
	require.NoError(t, p.Write(ctx, "lyfocus_theme", `"neon"`))

	s, warnings := Load(ctx, p, ns)
	require.Len(t, warnings, 2)
	assert.Equal(t, "lyfocus_habits", warnings[0].Key)
	assert.Equal(t, "decode", warnings[0].Op)
	assert.Equal(t, "lyfocus_theme", warnings[1].Key)

	assert.Empty(t, s.Habits)
	assert.NotNil(t, s.Habits)
	assert.Equal(t, DefaultTheme, s.Theme)
	assert.Len(t, s.Todos, 1, "other fields still load")
	assert.Equal(t, 260, s.Progress.XP)
}

func TestLoadRejectsUnknownGoalType(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemory()
	require.NoError(t, p.Write(ctx, "lyfocus_goals", `[{"id":1,"title":"x","type":"vibes"}]`))

	s, warnings := Load(ctx, p, ns)
	require.Len(t, warnings, 1)
	assert.Equal(t, "lyfocus_goals", warnings[0].Key)
	assert.Empty(t, s.Goals)
}

func TestNullFieldsNormalize(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemory()
	require.NoError(t, p.Write(ctx, "lyfocus_todos", "null"))
	require.NoError(t, p.Write(ctx, "lyfocus_level", "0"))

	s, warnings := Load(ctx, p, ns)
	assert.Empty(t, warnings)
	assert.NotNil(t, s.Todos)
	assert.Equal(t, 1, s.Progress.Level)
}

func TestSaveReportsEveryFailedWrite(t *testing.T) {
	p := store.NewMemory()
	p.Fail = errors.New("disk full")
	warnings := Save(context.Background(), p, ns, New(), FieldTodos, FieldXP)
	require.Len(t, warnings, 2)
	assert.Equal(t, "write", warnings[1].Op)
	assert.ErrorIs(t, warnings[1], p.Fail)
}

func TestEraseOnlyTouchesNamespace(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemory()
	require.Empty(t, Save(ctx, p, ns, populated(t), AllFields()...))
	require.NoError(t, p.Write(ctx, "lyfocus_dailyQuote", `{"q":"x"}`))
	require.NoError(t, p.Write(ctx, "other_todos", "[]"))

	require.NoError(t, Erase(ctx, p, ns))
	keys, err := p.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"other_todos"}, keys)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := populated(t)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Export(src, now)))
	assert.Contains(t, buf.String(), `"version": "1.0"`)
	assert.NotContains(t, buf.String(), "half a thought", "the draft is not exported")

	env, err := Decode(&buf)
	require.NoError(t, err)

	dst := New()
	dst.JournalDraft = "keep me"
	env.Apply(dst)

	assert.Equal(t, src.Progress, dst.Progress)
	assert.Equal(t, src.Theme, dst.Theme)
	assert.Equal(t, len(src.Goals), len(dst.Goals))
	assert.Equal(t, src.Goals[0].Target, dst.Goals[0].Target)
	assert.Equal(t, src.Gratitude[0].Items, dst.Gratitude[0].Items)
	assert.Equal(t, "keep me", dst.JournalDraft)
}

func TestImportDefaults(t *testing.T) {
	env, err := Decode(strings.NewReader(`{"version":"0.9","data":{"todos":null}}`))
	require.NoError(t, err)

	s := populated(t)
	env.Apply(s)
	assert.Equal(t, 1, s.Progress.Level)
	assert.Equal(t, 0, s.Progress.XP)
	assert.Equal(t, "", s.Progress.LastActiveDate)
	assert.Equal(t, ThemeLight, s.Theme)
	assert.NotNil(t, s.Todos)
	assert.Empty(t, s.Goals)
}

func TestDecodeRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"malformed":       `{"version":`,
		"missing version": `{"data":{}}`,
		"missing data":    `{"version":"1.0"}`,
		"null data":       `{"version":"1.0","data":null}`,
		"bad goal type":   `{"version":"1.0","data":{"goals":[{"id":1,"type":"vibes"}]}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(body))
			assert.ErrorIs(t, err, apperr.ErrFormat)
		})
	}
}

func TestStatsCountsBytes(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemory()
	s := populated(t)
	require.NoError(t, p.Write(ctx, "lyfocus_xp", "260"))
	require.NoError(t, p.Write(ctx, "other_xp", "99999"))

	ds, err := Stats(ctx, p, ns, s)
	require.NoError(t, err)
	assert.Equal(t, DataStats{Todos: 1, Habits: 1, JournalEntries: 1, Moods: 1, Goals: 1, Bytes: len("lyfocus_xp") + 3}, ds)
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(" Galaxy ")
	require.NoError(t, err)
	assert.Equal(t, ThemeGalaxy, th)

	_, err = ParseTheme("neon")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "lyfocus-backup-2026-10-18.json", BackupName(now))
}

func TestCarryCopiesFields(t *testing.T) {
	src := populated(t)
	dst := New()
	require.NoError(t, Carry(dst, src, FieldGoals, FieldXP))
	assert.Equal(t, src.Progress.XP, dst.Progress.XP)
	require.Len(t, dst.Goals, len(src.Goals))
	assert.Empty(t, dst.Todos)

	dst.Goals[0].Title = "changed"
	assert.NotEqual(t, "changed", src.Goals[0].Title, "dst shares goals with src")

	assert.Error(t, Carry(dst, src, Field("nope")))
}
