package main

const (
	EventRefreshPlayers = "refreshPlayers"
	EventRefreshRooms   = "refreshRooms"
	EventRefreshMatch   = "refreshMatch"
	EventReceiveMessage = "receiveMessage"
	EventWelcome        = "welcome"
	EventError          = "error"
)

// Broadcaster delivers state pushes to connections. Implementations must not
// block: they are called while the game lock is held.
type Broadcaster interface {
	// Send delivers to a single connection.
	Send(connID string, event string, payload any)
	// Broadcast delivers to every connection.
	Broadcast(event string, payload any)
	// SendRoom delivers to the connections subscribed to a room and to its spectators.
	SendRoom(roomID string, event string, payload any)
	Subscribe(connID string, roomID string)
	Unsubscribe(connID string, roomID string)
	// CloseRoom drops every subscription to a room that no longer exists.
	CloseRoom(roomID string)
}

type ChatMessage struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type WelcomeMessage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// emptyMatch is sent as refreshMatch when a room has no match.
type emptyMatch struct{}
