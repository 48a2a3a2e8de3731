package main

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindUnknownPlayer: the event came from a connection that is not registered,
	// usually a late message racing a disconnect.
	KindUnknownPlayer ErrorKind = "UNKNOWN_PLAYER"
	// KindUnknownRoom: the caller referenced a room that does not exist.
	KindUnknownRoom ErrorKind = "UNKNOWN_ROOM"
	// KindInvalidState: the event does not apply to the player's current state.
	KindInvalidState ErrorKind = "INVALID_STATE"
)

type GameError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *GameError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Is matches any GameError of the same kind.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newGameError(kind ErrorKind, format string, args ...any) *GameError {
	return &GameError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrUnknownPlayer = &GameError{Kind: KindUnknownPlayer, Message: "unknown player"}
	ErrUnknownRoom   = &GameError{Kind: KindUnknownRoom, Message: "unknown room"}
	ErrInvalidState  = &GameError{Kind: KindInvalidState, Message: "invalid state"}
)

// KindOf returns the kind of a GameError in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Kind
	}
	return ""
}
