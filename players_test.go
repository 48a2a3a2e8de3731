package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRegistry(t *testing.T) {
	players := NewPlayerRegistry()

	p := players.Add("0123456789")
	assert.Equal(t, "Player_01234", p.Name)
	assert.Same(t, p, players.Add("0123456789"))

	got, err := players.Get("0123456789")
	require.NoError(t, err)
	assert.Same(t, p, got)

	_, err = players.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	players.Remove("0123456789")
	players.Remove("0123456789")
	assert.Equal(t, 0, players.Len())

	again := players.Add("01234zzzzz")
	assert.Equal(t, "Player_01234", again.Name, "names are released on removal")
}

func TestPlayerNameFromShortID(t *testing.T) {
	players := NewPlayerRegistry()
	assert.Equal(t, "Player_ab", players.Add("ab").Name)
}

func TestPlayerSnapshot(t *testing.T) {
	players := NewPlayerRegistry()
	p := players.Add("aaaaa-1")
	roomID := "ROOM42"
	p.Room = &roomID

	views := players.Snapshot()
	p.Room = nil

	require.NotNil(t, views["aaaaa-1"].Room)
	assert.Equal(t, "ROOM42", *views["aaaaa-1"].Room)
}
