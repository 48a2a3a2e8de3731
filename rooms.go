package main

import (
	"pong-server/code"
	"pong-server/pong"
)

type Room struct {
	ID    string
	Name  string
	Slots [2]*string
	// Matched is set once the room has filled and started its match; a
	// room instance never starts a second one.
	Matched bool
}

// RoomView is the wire form of a room in refreshRooms. Closed rooms have
// played their match and turn every joiner away.
type RoomView struct {
	Name   string  `json:"name"`
	SlotA  *string `json:"slotA,omitempty"`
	SlotB  *string `json:"slotB,omitempty"`
	Closed bool    `json:"closed,omitempty"`
}

func (r *Room) Occupant(s pong.Slot) (string, bool) {
	if r.Slots[s] == nil {
		return "", false
	}
	return *r.Slots[s], true
}

// SlotOf finds the slot a player sits in, checking slot A first.
func (r *Room) SlotOf(name string) (pong.Slot, bool) {
	for _, s := range pong.Slots {
		if occupant, ok := r.Occupant(s); ok && occupant == name {
			return s, true
		}
	}
	return pong.SlotA, false
}

func (r *Room) Full() bool {
	return r.Slots[pong.SlotA] != nil && r.Slots[pong.SlotB] != nil
}

func (r *Room) Empty() bool {
	return r.Slots[pong.SlotA] == nil && r.Slots[pong.SlotB] == nil
}

func (r *Room) view() RoomView {
	return RoomView{
		Name:   r.Name,
		SlotA:  copyOf(r.Slots[pong.SlotA]),
		SlotB:  copyOf(r.Slots[pong.SlotB]),
		Closed: r.Matched,
	}
}

func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

type RoomManager struct {
	rooms    map[string]*Room
	generate func() string
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[string]*Room), generate: code.GenerateRandom}
}

func (m *RoomManager) Get(roomID string) (*Room, error) {
	if !code.Valid(roomID) {
		return nil, newGameError(KindUnknownRoom, "room %q does not exist", roomID)
	}
	room, exists := m.rooms[roomID]
	if !exists {
		return nil, newGameError(KindUnknownRoom, "room %q does not exist", roomID)
	}
	return room, nil
}

// Create opens a room under a fresh code with the owner in slot A.
func (m *RoomManager) Create(owner string) *Room {
	var roomID string
	for {
		roomID = m.generate()
		if _, exists := m.rooms[roomID]; !exists {
			break
		}
	}
	room := &Room{ID: roomID, Name: owner + "'s room"}
	room.Slots[pong.SlotA] = &owner
	m.rooms[roomID] = room
	return room
}

// Join seats the player in slot A if it is free, otherwise in slot B.
func (m *RoomManager) Join(roomID string, name string) (*Room, pong.Slot, error) {
	room, err := m.Get(roomID)
	if err != nil {
		return nil, pong.SlotA, err
	}
	if room.Full() {
		return nil, pong.SlotA, newGameError(KindInvalidState, "room %q is full", roomID)
	}
	if room.Matched {
		return nil, pong.SlotA, newGameError(KindInvalidState, "the match in room %q is over", roomID)
	}
	slot := pong.SlotB
	if room.Slots[pong.SlotA] == nil {
		slot = pong.SlotA
	}
	room.Slots[slot] = &name
	return room, slot, nil
}

// Leave empties the player's slot and removes the room once nobody is left.
func (m *RoomManager) Leave(roomID string, name string) (room *Room, slot pong.Slot, removed bool, err error) {
	room, err = m.Get(roomID)
	if err != nil {
		return nil, pong.SlotA, false, err
	}
	slot, ok := room.SlotOf(name)
	if !ok {
		return nil, pong.SlotA, false, newGameError(KindInvalidState, "%s is not in room %q", name, roomID)
	}
	room.Slots[slot] = nil
	if room.Empty() {
		delete(m.rooms, roomID)
		removed = true
	}
	return room, slot, removed, nil
}

func (m *RoomManager) Len() int {
	return len(m.rooms)
}

func (m *RoomManager) Snapshot() map[string]RoomView {
	views := make(map[string]RoomView, len(m.rooms))
	for id, room := range m.rooms {
		views[id] = room.view()
	}
	return views
}
