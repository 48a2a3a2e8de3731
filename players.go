package main

const namePrefix = "Player_"

type Player struct {
	ID   string
	Name string
	// Room is the id of the room the player sits in, if any. It is only
	// used for lookups; the RoomManager owns the room itself.
	Room *string
}

// PlayerView is the wire form of a player in refreshPlayers.
type PlayerView struct {
	Name string  `json:"name"`
	Room *string `json:"room,omitempty"`
}

type PlayerRegistry struct {
	players map[string]*Player
	names   map[string]string
}

func NewPlayerRegistry() *PlayerRegistry {
	return &PlayerRegistry{players: make(map[string]*Player), names: make(map[string]string)}
}

// Add registers the connection under a display name derived from its id.
// The name starts from the first five characters and grows until unique.
func (r *PlayerRegistry) Add(connID string) *Player {
	if p, exists := r.players[connID]; exists {
		return p
	}
	n := 5
	name := namePrefix + prefix(connID, n)
	for {
		if _, taken := r.names[name]; !taken || n >= len(connID) {
			break
		}
		n++
		name = namePrefix + prefix(connID, n)
	}
	p := &Player{ID: connID, Name: name}
	r.players[connID] = p
	r.names[name] = connID
	return p
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (r *PlayerRegistry) Get(connID string) (*Player, error) {
	p, exists := r.players[connID]
	if !exists {
		return nil, newGameError(KindUnknownPlayer, "no player for connection %s", connID)
	}
	return p, nil
}

func (r *PlayerRegistry) Remove(connID string) {
	p, exists := r.players[connID]
	if !exists {
		return
	}
	if r.names[p.Name] == connID {
		delete(r.names, p.Name)
	}
	delete(r.players, connID)
}

func (r *PlayerRegistry) Len() int {
	return len(r.players)
}

func (r *PlayerRegistry) Snapshot() map[string]PlayerView {
	views := make(map[string]PlayerView, len(r.players))
	for id, p := range r.players {
		view := PlayerView{Name: p.Name}
		if p.Room != nil {
			room := *p.Room
			view.Room = &room
		}
		views[id] = view
	}
	return views
}
