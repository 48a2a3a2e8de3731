package main

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ReceiverSSE writes a room's match frames to a spectator as Server-Sent Events.
type ReceiverSSE struct {
	w http.ResponseWriter
	f http.Flusher
}

func NewReceiverSSE(w http.ResponseWriter, f http.Flusher) *ReceiverSSE {
	return &ReceiverSSE{w, f}
}

func (r ReceiverSSE) SendByteSlice(msg []byte) {
	fmt.Fprintf(r.w, "data: %v\n\n", string(msg))
	r.f.Flush()
}

func (r ReceiverSSE) sendJSON(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		LogEncodeError("sse", err)
		return
	}
	r.SendByteSlice(data)
}

func (r ReceiverSSE) SendMatch(match any) {
	r.sendJSON(outboundEnvelope{Type: EventRefreshMatch, Payload: match})
}

func (r ReceiverSSE) SendRoomClosedMessage() {
	r.sendJSON(struct {
		Type string `json:"type"`
	}{Type: "close"})
}
