package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchSentinels(t *testing.T) {
	wrapped := fmt.Errorf("goal: create: %w", Invalid("title", "required"))
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.NotErrorIs(t, wrapped, ErrNotFound)

	var ve *ValidationError
	if assert.ErrorAs(t, wrapped, &ve) {
		assert.Equal(t, "title", ve.Field)
	}

	assert.ErrorIs(t, NotFound("goal", 42), ErrNotFound)
	assert.EqualError(t, NotFound("goal", 42), "goal 42 not found")

	cause := errors.New("unexpected EOF")
	fe := &FormatError{Reason: "decode", Err: cause}
	assert.ErrorIs(t, fe, ErrFormat)
	assert.ErrorIs(t, fe, cause)
}

func TestPersistenceWarningUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	w := PersistenceWarning{Key: "lyfocus_todos", Op: "write", Err: cause}
	assert.ErrorIs(t, w, cause)
	assert.Equal(t, "persistence write lyfocus_todos: disk full", w.Error())
}
