package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/gobwas/ws/wsutil"
)

const sendBufferSize = 64

type Connection struct {
	id        string
	conn      net.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outboundEnvelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type SendMessageEvent struct {
	Message string
}

type CreateRoomEvent struct{}

type JoinRoomEvent struct {
	RoomID string
}

type LeaveRoomEvent struct{}

type GameLoadedEvent struct{}

type SendKeyEvent struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

var (
	ErrUndefinedType  = errors.New("incorrect type")
	ErrMalformedEvent = errors.New("malformed event")
)

func NewConnection(id string, conn net.Conn) *Connection {
	return &Connection{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

func (c *Connection) ID() string {
	return c.id
}

func encodeEvent(event string, payload any) ([]byte, error) {
	return json.Marshal(outboundEnvelope{Type: event, Payload: payload})
}

// Enqueue hands a frame to the write loop without blocking. It reports
// false when the buffer is full or the connection is closed.
func (c *Connection) Enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// WriteLoop writes queued frames until the connection is closed or a write fails.
func (c *Connection) WriteLoop() error {
	for {
		select {
		case frame := <-c.send:
			if err := wsutil.WriteServerText(c.conn, frame); err != nil {
				c.Close()
				return err
			}
		case <-c.done:
			return nil
		}
	}
}

func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	parsed, err := UnmarshalJSON[T](raw)
	if err != nil {
		return parsed, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	return parsed, nil
}

// ReadEvent blocks for the next client frame and returns one of the *Event
// structs above.
func (c *Connection) ReadEvent() (any, error) {
	msg, err := wsutil.ReadClientText(c.conn)
	if err != nil {
		return nil, err
	}
	return parseEvent(msg)
}

func parseEvent(msg []byte) (any, error) {
	message, err := UnmarshalJSON[envelope](msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	switch message.Type {
	case "sendMessage":
		text, err := decodePayload[string](message.Payload)
		return SendMessageEvent{Message: text}, err
	case "createRoom":
		return CreateRoomEvent{}, nil
	case "joinRoom":
		roomID, err := decodePayload[string](message.Payload)
		return JoinRoomEvent{RoomID: roomID}, err
	case "leaveRoom":
		return LeaveRoomEvent{}, nil
	case "gameLoaded":
		return GameLoadedEvent{}, nil
	case "sendKey":
		return decodePayload[SendKeyEvent](message.Payload)
	default:
		return nil, ErrUndefinedType
	}
}
