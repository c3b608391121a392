// Package viewer implements the spectator-facing HTTP + WebSocket live
// battle feed.
package viewer

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event types sent over WebSocket to spectators.
const (
	EventTick        = "tick"
	EventBattleEnded = "battle_ended"
	EventSpectatorHi = "connected"
)

// WSEvent is the envelope for all WebSocket messages sent to spectators.
type WSEvent struct {
	Type     string `json:"type"`
	BattleID string `json:"battle_id"`
	Data     any    `json:"data"`
}

// ClientMessage is the envelope for messages sent from a spectator client.
type ClientMessage struct {
	Action   string `json:"action"` // "subscribe" or "unsubscribe"
	BattleID string `json:"battle_id"`
}

// conn wraps a WebSocket connection with its spectator id and subscriptions.
type conn struct {
	ws          *websocket.Conn
	spectatorID string
	send        chan []byte
}

// Hub manages WebSocket connections and battle-channel subscriptions.
type Hub struct {
	mu          sync.RWMutex
	connections map[*conn]bool
	battles     map[string]map[*conn]bool // battleID -> set of connections
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[*conn]bool),
		battles:     make(map[string]map[*conn]bool),
	}
}

// Register adds a connection to the hub.
func (h *Hub) Register(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
}

// Unregister removes a connection from the hub and all its subscriptions.
func (h *Hub) Unregister(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, c)
	for battleID, conns := range h.battles {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.battles, battleID)
		}
	}
	close(c.send)
}

// Subscribe adds a connection to a battle channel.
func (h *Hub) Subscribe(c *conn, battleID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.battles[battleID] == nil {
		h.battles[battleID] = make(map[*conn]bool)
	}
	h.battles[battleID][c] = true
}

// Unsubscribe removes a connection from a battle channel.
func (h *Hub) Unsubscribe(c *conn, battleID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.battles[battleID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.battles, battleID)
		}
	}
}

// BroadcastToBattle sends an event to every connection subscribed to a
// battle.
func (h *Hub) BroadcastToBattle(battleID string, event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("battleId", battleID).Msg("failed to marshal WebSocket event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.battles[battleID] {
		select {
		case c.send <- data:
		default:
			log.Warn().Str("spectatorId", c.spectatorID).Str("battleId", battleID).Msg("dropping WebSocket message, buffer full")
		}
	}
}

// ConnectionCount returns the total number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// BattleSubscriberCount returns the number of connections subscribed to a
// battle.
func (h *Hub) BattleSubscriberCount(battleID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.battles[battleID])
}
