package pong

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playing(t *testing.T) *Match {
	t.Helper()
	m := NewMatch(DefaultBoard)
	m.SetReady(SlotA)
	require.True(t, m.SetReady(SlotB))
	return m
}

func TestNewMatchGeometry(t *testing.T) {
	m := NewMatch(DefaultBoard)

	assert.Equal(t, StatusStart, m.Status)
	assert.Equal(t, [2]int{0, 0}, m.Scores)
	assert.Nil(t, m.Ball)
	assert.Equal(t, &Paddle{X: 5, Y: 210, Width: 10, Height: 80, Speed: 5, Direction: Stop}, m.Paddle(SlotA))
	assert.Equal(t, &Paddle{X: 985, Y: 210, Width: 10, Height: 80, Speed: 5, Direction: Stop}, m.Paddle(SlotB))
}

func TestSetReady(t *testing.T) {
	t.Run("single ready keeps START", func(t *testing.T) {
		m := NewMatch(DefaultBoard)
		assert.False(t, m.SetReady(SlotA))
		assert.False(t, m.SetReady(SlotA))
		assert.Equal(t, StatusStart, m.Status)
		assert.Nil(t, m.Ball)
	})

	t.Run("both ready spawns the ball", func(t *testing.T) {
		m := playing(t)
		assert.Equal(t, StatusPlay, m.Status)
		assert.Equal(t, &Ball{X: 500, Y: 290, Radius: 5, XDirection: 1, YDirection: 1, XSpeed: 2.8, YSpeed: 2.2}, m.Ball)
	})

	t.Run("ready after play is idempotent", func(t *testing.T) {
		m := playing(t)
		m.Ball.X = 123
		assert.False(t, m.SetReady(SlotA))
		assert.Equal(t, 123.0, m.Ball.X)
	})

	t.Run("vacated slot never becomes ready", func(t *testing.T) {
		m := NewMatch(DefaultBoard)
		m.Vacate(SlotB)
		assert.False(t, m.SetReady(SlotB))
		assert.False(t, m.SetReady(SlotA))
		assert.Equal(t, StatusStart, m.Status)
	})

	t.Run("ended match does not restart", func(t *testing.T) {
		m := NewMatch(DefaultBoard)
		m.SetReady(SlotA)
		m.End("bye")
		assert.False(t, m.SetReady(SlotB))
		assert.Equal(t, StatusEnd, m.Status)
	})
}

func TestDirectionFromKey(t *testing.T) {
	tests := []struct {
		eventType, key string
		want           Direction
	}{
		{"keydown", "ArrowUp", Up},
		{"keydown", "ArrowDown", Down},
		{"keyup", "ArrowUp", Stop},
		{"keyup", "ArrowDown", Stop},
		{"keydown", "ArrowLeft", Stop},
		{"keydown", "x", Stop},
	}
	for _, tt := range tests {
		t.Run(tt.eventType+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectionFromKey(tt.eventType, tt.key))
		})
	}
}

func TestTickOutsidePlay(t *testing.T) {
	m := NewMatch(DefaultBoard)
	m.SetInput(SlotA, Down)
	m.Tick()
	assert.Equal(t, 210.0, m.Paddle(SlotA).Y)

	m = playing(t)
	m.End("gone")
	before := *m.Ball
	m.Tick()
	assert.Equal(t, before, *m.Ball)
}

func TestSnapshotIsDetached(t *testing.T) {
	m := playing(t)
	m.Vacate(SlotB)
	m.End("Player X disconnected.")

	s := m.Snapshot()
	m.Paddle(SlotA).Y = 0
	m.Ball.X = 0

	assert.Equal(t, 210.0, s.SlotA.Y)
	assert.Equal(t, 500.0, s.Ball.X)
	assert.Nil(t, s.SlotB)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "slotB")
	assert.Equal(t, "END", decoded["status"])
	assert.Equal(t, "Player X disconnected.", decoded["message"])
	assert.Equal(t, 5.0, decoded["ball"].(map[string]any)["width"])
}
