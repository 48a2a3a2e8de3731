package main

import (
	"slices"
	"sync"
)

const watcherBufferSize = 16

// Hub is the websocket side of the Broadcaster: it knows every live
// connection, which rooms each one is subscribed to, and the spectators
// streaming a room's match.
type Hub struct {
	conns    map[string]*Connection
	rooms    map[string]map[string]struct{}
	watchers map[string][]chan []byte
	lock     sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		conns:    make(map[string]*Connection),
		rooms:    make(map[string]map[string]struct{}),
		watchers: make(map[string][]chan []byte),
	}
}

func (h *Hub) Register(c *Connection) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.conns[c.ID()] = c
}

func (h *Hub) Unregister(connID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	delete(h.conns, connID)
	for roomID, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) deliver(c *Connection, event string, frame []byte) {
	if !c.Enqueue(frame) {
		LogDroppedFrame(c.ID(), event)
	}
}

func (h *Hub) Send(connID string, event string, payload any) {
	frame, err := encodeEvent(event, payload)
	if err != nil {
		LogEncodeError(event, err)
		return
	}
	h.lock.RLock()
	defer h.lock.RUnlock()
	if c, exists := h.conns[connID]; exists {
		h.deliver(c, event, frame)
	}
}

func (h *Hub) Broadcast(event string, payload any) {
	frame, err := encodeEvent(event, payload)
	if err != nil {
		LogEncodeError(event, err)
		return
	}
	h.lock.RLock()
	defer h.lock.RUnlock()
	for _, c := range h.conns {
		h.deliver(c, event, frame)
	}
}

func (h *Hub) SendRoom(roomID string, event string, payload any) {
	frame, err := encodeEvent(event, payload)
	if err != nil {
		LogEncodeError(event, err)
		return
	}
	h.lock.RLock()
	defer h.lock.RUnlock()
	for connID := range h.rooms[roomID] {
		if c, exists := h.conns[connID]; exists {
			h.deliver(c, event, frame)
		}
	}
	for _, watcher := range h.watchers[roomID] {
		select {
		case watcher <- frame:
		default:
		}
	}
}

func (h *Hub) Subscribe(connID string, roomID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	members, exists := h.rooms[roomID]
	if !exists {
		members = make(map[string]struct{})
		h.rooms[roomID] = members
	}
	members[connID] = struct{}{}
}

func (h *Hub) Unsubscribe(connID string, roomID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	members := h.rooms[roomID]
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, roomID)
	}
}

// CloseRoom forgets the room's subscribers and closes every spectator
// channel, which tells the streams the room is gone.
func (h *Hub) CloseRoom(roomID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	delete(h.rooms, roomID)
	for _, watcher := range h.watchers[roomID] {
		close(watcher)
	}
	delete(h.watchers, roomID)
}

// Watch registers a spectator for a room's match frames.
func (h *Hub) Watch(roomID string) chan []byte {
	h.lock.Lock()
	defer h.lock.Unlock()
	watcher := make(chan []byte, watcherBufferSize)
	h.watchers[roomID] = append(h.watchers[roomID], watcher)
	return watcher
}

// Unwatch removes a spectator. A channel already closed by CloseRoom is no
// longer listed, so it is never closed twice.
func (h *Hub) Unwatch(roomID string, watcher chan []byte) {
	h.lock.Lock()
	defer h.lock.Unlock()
	watchers := h.watchers[roomID]
	for i, w := range watchers {
		if w == watcher {
			h.watchers[roomID] = slices.Delete(watchers, i, i+1)
			break
		}
	}
	if len(h.watchers[roomID]) == 0 {
		delete(h.watchers, roomID)
	}
}

func (h *Hub) Len() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.conns)
}
