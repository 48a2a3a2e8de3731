package main

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queued returns the event types waiting in a connection's send buffer.
func queued(t *testing.T, c *Connection) []string {
	t.Helper()
	var events []string
	for {
		select {
		case frame := <-c.send:
			var parsed envelope
			require.NoError(t, json.Unmarshal(frame, &parsed))
			events = append(events, parsed.Type)
		default:
			return events
		}
	}
}

func newHubConnection(t *testing.T, hub *Hub, id string) *Connection {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close() })
	c := NewConnection(id, server)
	t.Cleanup(c.Close)
	hub.Register(c)
	return c
}

func TestHubDelivery(t *testing.T) {
	hub := NewHub()
	alice := newHubConnection(t, hub, "alice")
	bob := newHubConnection(t, hub, "bob")
	hub.Subscribe("alice", "ROOM01")

	hub.Broadcast(EventRefreshPlayers, map[string]PlayerView{})
	hub.Send("bob", EventWelcome, WelcomeMessage{ID: "bob", Name: "Player_bob"})
	hub.SendRoom("ROOM01", EventRefreshMatch, emptyMatch{})
	hub.Send("nobody", EventWelcome, nil)

	assert.Equal(t, []string{EventRefreshPlayers, EventRefreshMatch}, queued(t, alice))
	assert.Equal(t, []string{EventRefreshPlayers, EventWelcome}, queued(t, bob))

	hub.Unsubscribe("alice", "ROOM01")
	hub.SendRoom("ROOM01", EventRefreshMatch, emptyMatch{})
	assert.Empty(t, queued(t, alice))

	hub.Unregister("bob")
	hub.Broadcast(EventRefreshRooms, map[string]RoomView{})
	assert.Empty(t, queued(t, bob))
	assert.Equal(t, 1, hub.Len())
}

func TestHubWatchers(t *testing.T) {
	hub := NewHub()
	first := hub.Watch("ROOM01")
	second := hub.Watch("ROOM01")

	hub.SendRoom("ROOM01", EventRefreshMatch, emptyMatch{})
	assert.JSONEq(t, `{"type":"refreshMatch","payload":{}}`, string(<-first))
	assert.JSONEq(t, `{"type":"refreshMatch","payload":{}}`, string(<-second))

	hub.Unwatch("ROOM01", second)
	hub.CloseRoom("ROOM01")

	_, open := <-first
	assert.False(t, open)
	select {
	case <-second:
		t.Fatal("an unwatched channel must not be closed or written")
	default:
	}
	hub.Unwatch("ROOM01", first)
}

func TestHubCloseRoomDropsSubscribers(t *testing.T) {
	hub := NewHub()
	alice := newHubConnection(t, hub, "alice")
	hub.Subscribe("alice", "ROOM01")

	hub.CloseRoom("ROOM01")
	hub.SendRoom("ROOM01", EventRefreshMatch, emptyMatch{})

	assert.Empty(t, queued(t, alice))
}
