package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameErrorKinds(t *testing.T) {
	err := newGameError(KindUnknownRoom, "room %q does not exist", "ABC")

	assert.Equal(t, `[UNKNOWN_ROOM] room "ABC" does not exist`, err.Error())
	assert.ErrorIs(t, err, ErrUnknownRoom)
	assert.False(t, errors.Is(err, ErrUnknownPlayer))

	wrapped := fmt.Errorf("join: %w", err)
	assert.ErrorIs(t, wrapped, ErrUnknownRoom)
	assert.Equal(t, KindUnknownRoom, KindOf(wrapped))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}
