// Package pong holds the authoritative state of a single match and the
// physics that advance it one tick at a time. Nothing here locks or
// schedules; callers serialize access.
package pong

import "strings"

type Status string

const (
	StatusStart Status = "START"
	StatusPlay  Status = "PLAY"
	StatusEnd   Status = "END"
)

// Slot is one of the two fixed positions of a room or match.
type Slot int

const (
	SlotA Slot = iota
	SlotB
)

var Slots = [2]Slot{SlotA, SlotB}

func (s Slot) String() string {
	if s == SlotA {
		return "A"
	}
	return "B"
}

type Direction string

const (
	Stop Direction = "STOP"
	Up   Direction = "UP"
	Down Direction = "DOWN"
)

// DirectionFromKey turns a raw key event into a paddle direction. Releasing
// any key stops the paddle, and keys other than the vertical arrows do too.
func DirectionFromKey(eventType, key string) Direction {
	if eventType == "keyup" {
		return Stop
	}
	switch Direction(strings.ToUpper(strings.TrimPrefix(key, "Arrow"))) {
	case Up:
		return Up
	case Down:
		return Down
	}
	return Stop
}

type Board struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var DefaultBoard = Board{Width: 1000, Height: 580}

const (
	PaddleInset  = 5
	PaddleWidth  = 10
	PaddleHeight = 80
	PaddleSpeed  = 5

	BallRadius = 5
	BallSpeedX = 2.8
	BallSpeedY = 2.2
)

type Paddle struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Speed     float64   `json:"speed"`
	Direction Direction `json:"direction"`
	Ready     bool      `json:"ready"`
}

type Ball struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Radius     float64 `json:"width"`
	XDirection float64 `json:"xdirection"`
	YDirection float64 `json:"ydirection"`
	XSpeed     float64 `json:"xspeed"`
	YSpeed     float64 `json:"yspeed"`
}

type Match struct {
	Board   Board
	Paddles [2]*Paddle
	Ball    *Ball
	Scores  [2]int
	Status  Status
	Message string
}

// NewMatch places both paddles at their starting geometry, mirrored across
// the board, and leaves the match waiting for both players in START.
func NewMatch(board Board) *Match {
	y := board.Height/2 - PaddleHeight/2
	return &Match{
		Board: board,
		Paddles: [2]*Paddle{
			newPaddle(PaddleInset, y),
			newPaddle(board.Width-PaddleInset-PaddleWidth, y),
		},
		Status: StatusStart,
	}
}

func newPaddle(x, y float64) *Paddle {
	return &Paddle{
		X:         x,
		Y:         y,
		Width:     PaddleWidth,
		Height:    PaddleHeight,
		Speed:     PaddleSpeed,
		Direction: Stop,
	}
}

// Paddle returns the paddle in slot s, or nil when the slot was vacated.
func (m *Match) Paddle(s Slot) *Paddle {
	return m.Paddles[s]
}

// SetReady marks slot s ready and starts play once both slots are ready.
// It reports whether this call moved the match from START to PLAY.
func (m *Match) SetReady(s Slot) bool {
	p := m.Paddles[s]
	if p == nil {
		return false
	}
	p.Ready = true
	if m.Status != StatusStart {
		return false
	}
	for _, p := range m.Paddles {
		if p == nil || !p.Ready {
			return false
		}
	}
	m.Status = StatusPlay
	m.Ball = &Ball{
		X:          m.Board.Width / 2,
		Y:          m.Board.Height / 2,
		Radius:     BallRadius,
		XDirection: 1,
		YDirection: 1,
		XSpeed:     BallSpeedX,
		YSpeed:     BallSpeedY,
	}
	return true
}

// SetInput buffers the latest direction for slot s; the next tick consumes it.
func (m *Match) SetInput(s Slot, d Direction) {
	if p := m.Paddles[s]; p != nil {
		p.Direction = d
	}
}

// Vacate removes the paddle of a departing player.
func (m *Match) Vacate(s Slot) {
	m.Paddles[s] = nil
}

// End moves the match to its terminal status. END is never left.
func (m *Match) End(message string) {
	m.Status = StatusEnd
	m.Message = message
}

func (m *Match) Tick() {
	if m.Status != StatusPlay || m.Ball == nil {
		return
	}
	m.moveBall()
	m.movePaddles()
	m.collide()
}

// Snapshot is a detached copy of a match, safe to encode after the lock
// protecting the match has been released.
type Snapshot struct {
	Board   Board   `json:"board"`
	SlotA   *Paddle `json:"slotA,omitempty"`
	SlotB   *Paddle `json:"slotB,omitempty"`
	Ball    *Ball   `json:"ball,omitempty"`
	ScoreA  int     `json:"scoreA"`
	ScoreB  int     `json:"scoreB"`
	Status  Status  `json:"status"`
	Message string  `json:"message,omitempty"`
}

func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		Board:   m.Board,
		SlotA:   copyOf(m.Paddles[SlotA]),
		SlotB:   copyOf(m.Paddles[SlotB]),
		Ball:    copyOf(m.Ball),
		ScoreA:  m.Scores[SlotA],
		ScoreB:  m.Scores[SlotB],
		Status:  m.Status,
		Message: m.Message,
	}
}

func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
