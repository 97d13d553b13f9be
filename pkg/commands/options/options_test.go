package options

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/goal"
)

func TestParseDeadline(t *testing.T) {
	now := time.Date(2024, time.June, 12, 15, 0, 0, 0, time.Local)
	cases := map[string]struct {
		in   string
		want string
		err  bool
	}{
		"empty":          {in: "", want: ""},
		"full date":      {in: "2024-7-4", want: "2024-07-04"},
		"padded":         {in: "2024-07-04", want: "2024-07-04"},
		"short future":   {in: "12/31", want: "2024-12-31"},
		"short today":    {in: "6/12", want: "2024-06-12"},
		"short rollover": {in: "1/3", want: "2025-01-03"},
		"garbage":        {in: "soon", err: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseDeadline(tc.in, now)
			if tc.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperr.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 1718200000000 ")
	require.NoError(t, err)
	assert.Equal(t, int64(1718200000000), id)

	for _, bad := range []string{"", "abc", "-4", "0"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, apperr.ErrValidation, bad)
	}
}

func TestGoalOptionsSpec(t *testing.T) {
	now := time.Date(2024, time.June, 12, 9, 0, 0, 0, time.Local)
	o := GoalOptions{
		Title:      "  Ship it ",
		Type:       "milestone",
		Category:   "Career",
		Milestones: []string{"draft", "review"},
		Deadline:   "7/1",
	}
	spec, err := o.Spec(now)
	require.NoError(t, err)
	assert.Equal(t, "Ship it", spec.Title)
	assert.Equal(t, goal.TypeMilestone, spec.Type)
	assert.Equal(t, goal.CategoryCareer, spec.Category)
	assert.Equal(t, "2024-07-01", spec.Deadline)

	o.Type = "sprint"
	_, err = o.Spec(now)
	assert.Error(t, err)
}

func TestHandleError(t *testing.T) {
	boom := errors.New("boom")
	plain := &OutputOptions{}
	assert.Equal(t, boom, plain.HandleError(boom))
	assert.NoError(t, plain.HandleError(nil))
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	o := &OutputOptions{JSON: true}
	require.NoError(t, o.Print(&buf, map[string]int{"xp": 25}))
	assert.Equal(t, "{\n  \"xp\": 25\n}\n", buf.String())
}
