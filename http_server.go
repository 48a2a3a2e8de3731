package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gobwas/ws"
	"github.com/google/uuid"
)

type HTTPHandler struct {
	Game *Game
	Hub  *Hub
}

func NewHTTPServer(game *Game, hub *Hub, config *Config) http.Handler {
	httpHandler := HTTPHandler{game, hub}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RealIP)
	r.Use(httprate.Limit(config.RateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint)))
	r.Use(middleware.Heartbeat("/"))

	r.Get("/ws", httpHandler.websocket())
	r.Get("/players", httpHandler.getPlayers())
	r.Get("/rooms", httpHandler.getRooms())
	r.Get("/rooms/{roomID}/match", httpHandler.getMatch())
	r.Get("/rooms/{roomID}/match/stream", httpHandler.getMatchEventStream())
	return r
}

func (h HTTPHandler) websocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			LogErrorWhileUpgradingHTTP(err)
			return
		}
		c := NewConnection(uuid.NewString(), conn)
		defer c.Close()
		h.Hub.Register(c)
		go c.WriteLoop()

		player := h.Game.OnConnect(c.ID())
		logger := GetConnLogger(r.RemoteAddr, c.ID())
		logger.Connected(player.Name)

		for {
			msg, err := c.ReadEvent()
			if err != nil {
				if errors.Is(err, ErrUndefinedType) || errors.Is(err, ErrMalformedEvent) {
					logger.MalformedEvent(err)
					continue
				}
				break
			}
			h.dispatch(c.ID(), msg, logger)
		}

		if err := h.Game.OnDisconnect(c.ID()); err != nil {
			logger.Ignored(err)
		}
		h.Hub.Unregister(c.ID())
		logger.Disconnected()
	}
}

// dispatch runs the handler for one inbound event. Unknown rooms are
// reported back to the caller; every other failure is dropped.
func (h HTTPHandler) dispatch(connID string, msg any, logger ConnLogger) {
	var err error
	switch m := msg.(type) {
	case SendMessageEvent:
		err = h.Game.RelayMessage(connID, m.Message)
	case CreateRoomEvent:
		_, err = h.Game.CreateRoom(connID)
	case JoinRoomEvent:
		err = h.Game.JoinRoom(connID, m.RoomID)
	case LeaveRoomEvent:
		err = h.Game.LeaveRoom(connID)
	case GameLoadedEvent:
		err = h.Game.GameLoaded(connID)
	case SendKeyEvent:
		err = h.Game.SendKey(connID, m.Type, m.Key)
	}
	if err == nil {
		return
	}
	if KindOf(err) == KindUnknownRoom {
		h.Hub.Send(connID, EventError, err)
		logger.Rejected(err)
		return
	}
	logger.Ignored(err)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h HTTPHandler) getPlayers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.Game.Players())
	}
}

func (h HTTPHandler) getRooms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.Game.Rooms())
	}
}

func (h HTTPHandler) getMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := h.Game.Match(chi.URLParam(r, "roomID"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func (h HTTPHandler) getMatchEventStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "HTTP Streaming not supported!", http.StatusBadRequest)
			return
		}
		roomID := chi.URLParam(r, "roomID")
		match, frames, err := h.Game.Spectate(roomID, h.Hub)
		if err != nil {
			writeJSON(w, http.StatusNotFound, err)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		receiverSSE := NewReceiverSSE(w, flusher)
		receiverSSE.SendMatch(match)
		logger := GetConnLogger(r.RemoteAddr, uuid.NewString())
		logger.WatchingMatch(roomID)
	messageLoop:
		for {
			select {
			case msg, more := <-frames:
				if !more {
					receiverSSE.SendRoomClosedMessage()
					break messageLoop
				}
				receiverSSE.SendByteSlice(msg)
			case <-r.Context().Done():
				h.Hub.Unwatch(roomID, frames)
				break messageLoop
			}
		}
		logger.StoppedWatching(roomID)
	}
}
