package pong

import "math"

func (m *Match) moveBall() {
	b := m.Ball
	b.X += b.XSpeed * b.XDirection
	b.Y += b.YSpeed * b.YDirection
}

func (m *Match) movePaddles() {
	maxY := m.Board.Height
	for _, p := range m.Paddles {
		if p == nil {
			continue
		}
		switch p.Direction {
		case Up:
			p.Y -= p.Speed
		case Down:
			p.Y += p.Speed
		}
		if p.Y < 0 {
			p.Y = 0
		} else if p.Y+p.Height > maxY {
			p.Y = maxY - p.Height
		}
	}
}

// collide bounces the ball off the top and bottom walls, then tests it
// against the paddle on its half of the board using the closest point of
// the paddle rectangle to the ball centre. A miss past either goal line
// scores for the side the ball reached.
func (m *Match) collide() {
	b, board := m.Ball, m.Board
	r := b.Radius

	// The margin is the radius on both edges, compared strictly.
	if b.Y > board.Height-r || b.Y < r {
		b.YDirection *= -1
	}

	slot := SlotB
	if b.X < board.Width/2 {
		slot = SlotA
	}

	if p := m.Paddles[slot]; p != nil && touches(b, p) {
		b.XDirection *= -1
		if slot == SlotA {
			b.X = p.X + p.Width + r
		} else {
			b.X = p.X - r
		}
		return
	}

	switch {
	case b.X < r:
		m.Scores[SlotB]++
		m.restart()
	case b.X > board.Width-r:
		m.Scores[SlotA]++
		m.restart()
	}
}

func touches(b *Ball, p *Paddle) bool {
	closestX := clamp(b.X, p.X, p.X+p.Width)
	closestY := clamp(b.Y, p.Y, p.Y+p.Height)
	return math.Hypot(b.X-closestX, b.Y-closestY) <= b.Radius
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// restart serves the ball from the centre towards the player who scored.
// Speeds and the vertical direction carry over.
func (m *Match) restart() {
	b := m.Ball
	b.XDirection *= -1
	b.X = m.Board.Width / 2
	b.Y = m.Board.Height / 2
}
