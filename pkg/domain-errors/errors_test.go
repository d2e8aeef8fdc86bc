package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches outer code", func(t *testing.T) {
		err := New(CodeUnknownStep, "unknown step")
		assert.True(t, HasCode(err, CodeUnknownStep))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("matches nested code through fmt wrapping", func(t *testing.T) {
		inner := New(CodeIncompleteWorkflow, "nothing evaluated")
		err := fmt.Errorf("submit: %w", Wrap(inner, CodeConflict, "cannot submit"))
		assert.True(t, HasCode(err, CodeConflict))
		assert.True(t, HasCode(err, CodeIncompleteWorkflow))
		assert.Equal(t, CodeConflict, CodeOf(err))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		err := errors.New("boom")
		assert.False(t, HasCode(err, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(err))
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("redis down")
	err := Wrap(cause, CodeInternal, "failed to load session")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load session: redis down", err.Error())
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}
