package viewer

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/medievail/skirmish/internal/auth"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second // must be less than pongWait
	maxMsgSize  = 4096
	sendBufSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // tighten in production; no CSRF-sensitive state here
	},
}

// Handler handles spectator WebSocket connections.
type Handler struct {
	hub    *Hub
	jwtMgr *auth.JWTManager
	poller *RedisPoller
}

// NewHandler creates a Handler. poller may be nil, in which case spectators
// only receive ticks from battles run in-process via BroadcastSink.
func NewHandler(hub *Hub, jwtMgr *auth.JWTManager, poller *RedisPoller) *Handler {
	return &Handler{hub: hub, jwtMgr: jwtMgr, poller: poller}
}

// ServeWS handles GET /ws — upgrades to WebSocket. Auth via ?token= query
// parameter (WebSocket can't send headers).
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, `{"error":"missing token parameter"}`, http.StatusUnauthorized)
		return
	}

	claims, err := h.jwtMgr.ValidateToken(tokenStr)
	if err != nil {
		http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &conn{
		ws:          ws,
		spectatorID: claims.UserID,
		send:        make(chan []byte, sendBufSize),
	}
	h.hub.Register(c)

	welcome, _ := json.Marshal(WSEvent{Type: EventSpectatorHi, BattleID: "", Data: map[string]any{}})
	c.send <- welcome

	go h.writePump(c)
	go h.readPump(c)

	log.Info().Str("spectatorId", claims.UserID).Int("total", h.hub.ConnectionCount()).Msg("spectator connected")
}

func (h *Handler) readPump(c *conn) {
	defer func() {
		h.hub.Unregister(c)
		c.ws.Close()
		log.Info().Str("spectatorId", c.spectatorID).Msg("spectator disconnected")
	}()

	c.ws.SetReadLimit(maxMsgSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("spectatorId", c.spectatorID).Msg("websocket unexpected close")
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		switch msg.Action {
		case "subscribe":
			if msg.BattleID != "" {
				h.hub.Subscribe(c, msg.BattleID)
				if h.poller != nil {
					h.poller.EnsurePolling(msg.BattleID)
				}
			}
		case "unsubscribe":
			if msg.BattleID != "" {
				h.hub.Unsubscribe(c, msg.BattleID)
			}
		}
	}
}

func (h *Handler) writePump(c *conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.ws.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte("\n"))
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
