package main

import (
	"fmt"
	"sync"
	"time"

	"pong-server/pong"
)

const lobbySender = "game"

// Game handles every inbound event. A single mutex serializes the handlers
// with each other and with the tick tasks, so a room never sees its own
// handlers interleave with its tick.
type Game struct {
	mu      sync.Mutex
	board   pong.Board
	players *PlayerRegistry
	rooms   *RoomManager
	matches *MatchEngine
	out     Broadcaster
}

func NewGame(out Broadcaster, board pong.Board, tickInterval time.Duration) *Game {
	g := &Game{
		board:   board,
		players: NewPlayerRegistry(),
		rooms:   NewRoomManager(),
		out:     out,
	}
	g.matches = NewMatchEngine(&g.mu, out, tickInterval)
	return g
}

func (g *Game) refreshPlayers() {
	g.out.Broadcast(EventRefreshPlayers, g.players.Snapshot())
}

func (g *Game) refreshRooms() {
	g.out.Broadcast(EventRefreshRooms, g.rooms.Snapshot())
}

func (g *Game) refreshMatch(roomID string) {
	g.out.SendRoom(roomID, EventRefreshMatch, g.matchPayload(roomID))
}

func (g *Game) matchPayload(roomID string) any {
	if match, exists := g.matches.Get(roomID); exists {
		return match.Snapshot()
	}
	return emptyMatch{}
}

func (g *Game) notice(format string, args ...any) {
	g.out.Broadcast(EventReceiveMessage, ChatMessage{Sender: lobbySender, Message: fmt.Sprintf(format, args...)})
}

func (g *Game) OnConnect(connID string) Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.players.Add(connID)
	g.out.Send(connID, EventWelcome, WelcomeMessage{ID: connID, Name: p.Name})
	g.notice("%s joined.", p.Name)
	g.refreshPlayers()
	g.refreshRooms()
	return *p
}

func (g *Game) OnDisconnect(connID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, err := g.players.Get(connID)
	if err != nil {
		return err
	}
	g.notice("%s left.", p.Name)
	var leaveErr error
	if p.Room != nil {
		leaveErr = g.leaveRoom(p)
	}
	g.players.Remove(connID)
	g.refreshPlayers()
	g.refreshRooms()
	return leaveErr
}

func (g *Game) RelayMessage(connID string, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, err := g.players.Get(connID)
	if err != nil {
		return err
	}
	g.out.Broadcast(EventReceiveMessage, ChatMessage{Sender: p.Name, Message: text})
	return nil
}

func (g *Game) CreateRoom(connID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, err := g.players.Get(connID)
	if err != nil {
		return "", err
	}
	if p.Room != nil {
		return "", newGameError(KindInvalidState, "%s is already in room %q", p.Name, *p.Room)
	}
	room := g.rooms.Create(p.Name)
	roomID := room.ID
	p.Room = &roomID
	g.out.Subscribe(connID, roomID)
	LogRoomCreated(roomID, p.Name)

	g.refreshPlayers()
	g.refreshRooms()
	g.notice("%s created a room.", p.Name)
	return roomID, nil
}

// JoinRoom seats the player and, when that fills the room, creates its
// match and starts the tick task.
func (g *Game) JoinRoom(connID string, roomID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, err := g.players.Get(connID)
	if err != nil {
		return err
	}
	if p.Room != nil {
		return newGameError(KindInvalidState, "%s is already in room %q", p.Name, *p.Room)
	}
	room, _, err := g.rooms.Join(roomID, p.Name)
	if err != nil {
		return err
	}
	joined := room.ID
	p.Room = &joined
	g.out.Subscribe(connID, roomID)

	if room.Full() && !room.Matched {
		room.Matched = true
		g.matches.Start(roomID, pong.NewMatch(g.board))
		LogMatchStarted(roomID)
	}

	g.refreshPlayers()
	g.refreshRooms()
	g.refreshMatch(roomID)
	g.notice("%s joined a room.", p.Name)
	return nil
}

func (g *Game) LeaveRoom(connID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, err := g.players.Get(connID)
	if err != nil {
		return err
	}
	if p.Room == nil {
		return newGameError(KindInvalidState, "%s is not in a room", p.Name)
	}
	if err := g.leaveRoom(p); err != nil {
		return err
	}
	g.refreshPlayers()
	g.refreshRooms()
	g.notice("%s left the room.", p.Name)
	return nil
}

// leaveRoom vacates the player's slot in the room and in its match, ends
// the match, and tears both down once the room is empty.
func (g *Game) leaveRoom(p *Player) error {
	roomID := *p.Room
	p.Room = nil
	_, slot, removed, err := g.rooms.Leave(roomID, p.Name)
	if err != nil {
		return err
	}
	if match, exists := g.matches.Get(roomID); exists {
		match.Vacate(slot)
		if match.Status != pong.StatusEnd {
			match.End(fmt.Sprintf("Player %s disconnected.", p.Name))
			LogMatchEnded(roomID, match.Message)
		}
	}
	if removed {
		g.matches.Remove(roomID)
		LogRoomRemoved(roomID)
	}
	g.refreshMatch(roomID)
	g.out.Unsubscribe(p.ID, roomID)
	if removed {
		g.out.CloseRoom(roomID)
	}
	return nil
}

// matchOf resolves the match and slot of a player who is expected to be playing.
func (g *Game) matchOf(connID string) (*pong.Match, pong.Slot, string, error) {
	p, err := g.players.Get(connID)
	if err != nil {
		return nil, pong.SlotA, "", err
	}
	if p.Room == nil {
		return nil, pong.SlotA, "", newGameError(KindInvalidState, "%s is not in a room", p.Name)
	}
	roomID := *p.Room
	room, err := g.rooms.Get(roomID)
	if err != nil {
		return nil, pong.SlotA, "", err
	}
	match, exists := g.matches.Get(roomID)
	if !exists {
		return nil, pong.SlotA, "", newGameError(KindInvalidState, "room %q has no match", roomID)
	}
	slot, ok := room.SlotOf(p.Name)
	if !ok {
		return nil, pong.SlotA, "", newGameError(KindInvalidState, "%s has no slot in room %q", p.Name, roomID)
	}
	return match, slot, roomID, nil
}

// GameLoaded marks the caller's paddle ready; the second ready signal starts play.
func (g *Game) GameLoaded(connID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	match, slot, roomID, err := g.matchOf(connID)
	if err != nil {
		return err
	}
	if match.SetReady(slot) {
		LogMatchPlaying(roomID)
	}
	g.refreshMatch(roomID)
	return nil
}

func (g *Game) SendKey(connID string, eventType string, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	match, slot, _, err := g.matchOf(connID)
	if err != nil {
		return err
	}
	if match.Status == pong.StatusEnd {
		return newGameError(KindInvalidState, "match is over")
	}
	match.SetInput(slot, pong.DirectionFromKey(eventType, key))
	return nil
}

func (g *Game) Players() map[string]PlayerView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players.Snapshot()
}

func (g *Game) Rooms() map[string]RoomView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rooms.Snapshot()
}

// Match returns the room's match snapshot, or an empty object while the
// room is still waiting for its second player.
func (g *Game) Match(roomID string) (any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, err := g.rooms.Get(roomID); err != nil {
		return nil, err
	}
	return g.matchPayload(roomID), nil
}

type Spectators interface {
	Watch(roomID string) chan []byte
}

// Spectate registers a spectator for the room while it is known to exist,
// so the stream is always closed when the room goes away.
func (g *Game) Spectate(roomID string, spectators Spectators) (any, chan []byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, err := g.rooms.Get(roomID); err != nil {
		return nil, nil, err
	}
	return g.matchPayload(roomID), spectators.Watch(roomID), nil
}

// Stop halts every tick task. Rooms and players are left as they are.
func (g *Game) Stop() {
	g.matches.Stop()
}
