package main

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/gobwas/ws/wsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEvent(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	c := NewConnection("conn-1", server)
	defer c.Close()

	frames := []string{
		`{"type":"sendMessage","payload":"hi there"}`,
		`{"type":"createRoom"}`,
		`{"type":"joinRoom","payload":"AbC123"}`,
		`{"type":"leaveRoom"}`,
		`{"type":"gameLoaded"}`,
		`{"type":"sendKey","payload":{"type":"keydown","key":"ArrowUp"}}`,
	}
	go func() {
		for _, frame := range frames {
			wsutil.WriteClientText(client, []byte(frame))
		}
	}()

	want := []any{
		SendMessageEvent{Message: "hi there"},
		CreateRoomEvent{},
		JoinRoomEvent{RoomID: "AbC123"},
		LeaveRoomEvent{},
		GameLoadedEvent{},
		SendKeyEvent{Type: "keydown", Key: "ArrowUp"},
	}
	for _, expected := range want {
		got, err := c.ReadEvent()
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	}
}

func TestParseEventErrors(t *testing.T) {
	_, err := parseEvent([]byte(`{"type":"teleport"}`))
	assert.ErrorIs(t, err, ErrUndefinedType)

	_, err = parseEvent([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, err = parseEvent([]byte(`{"type":"joinRoom","payload":42}`))
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, err = parseEvent([]byte(`{"type":"sendMessage"}`))
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, err = parseEvent([]byte(`{"type":"sendKey","payload":"ArrowUp"}`))
	assert.ErrorIs(t, err, ErrMalformedEvent)
}

func TestWriteLoop(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	c := NewConnection("conn-1", server)
	go c.WriteLoop()
	defer c.Close()

	frame, err := encodeEvent(EventReceiveMessage, ChatMessage{Sender: "game", Message: "hello"})
	require.NoError(t, err)
	require.True(t, c.Enqueue(frame))

	data, err := wsutil.ReadServerText(client)
	require.NoError(t, err)
	var parsed struct {
		Type    string      `json:"type"`
		Payload ChatMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "receiveMessage", parsed.Type)
	assert.Equal(t, ChatMessage{Sender: "game", Message: "hello"}, parsed.Payload)
}

func TestEnqueueAfterClose(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	c := NewConnection("conn-1", server)
	c.Close()
	c.Close()

	assert.False(t, c.Enqueue([]byte("{}")))
}

func TestEnqueueFullBuffer(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	c := NewConnection("conn-1", server)
	defer c.Close()

	for i := 0; i < sendBufferSize; i++ {
		require.True(t, c.Enqueue([]byte("{}")))
	}
	assert.False(t, c.Enqueue([]byte("{}")))
}
