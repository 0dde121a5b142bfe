package services

import (
	"context"
	"sync"
	"time"

	"menumeters/internal/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocketMessage represents a message sent over WebSocket
type WebSocketMessage struct {
	Type      string         `json:"type"` // "frame", "snapshot", "pong", "error"
	Timestamp time.Time      `json:"timestamp"`
	Frame     *models.Frame  `json:"frame,omitempty"`
	Frames    []models.Frame `json:"frames,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// ClientConnection represents a connected WebSocket client
type ClientConnection struct {
	ID   string
	Conn *websocket.Conn
	Send chan WebSocketMessage
}

// NewClientConnection wraps conn with a buffered send queue.
func NewClientConnection(id string, conn *websocket.Conn) *ClientConnection {
	return &ClientConnection{
		ID:   id,
		Conn: conn,
		Send: make(chan WebSocketMessage, 64),
	}
}

// WebSocketHub fans frames out to connected clients. Slow clients miss
// frames rather than block the sampling loop.
type WebSocketHub struct {
	clients   map[string]*ClientConnection
	broadcast chan WebSocketMessage
	mu        sync.RWMutex
	closed    bool
	logger    *zap.Logger
}

// NewWebSocketHub creates a hub; call Run to start delivering broadcasts.
func NewWebSocketHub(logger *zap.Logger) *WebSocketHub {
	return &WebSocketHub{
		clients:   make(map[string]*ClientConnection),
		broadcast: make(chan WebSocketMessage, 256),
		logger:    logger,
	}
}

// Run delivers broadcasts until ctx is cancelled, then disconnects every
// client.
func (h *WebSocketHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			h.closed = true
			for id, client := range h.clients {
				delete(h.clients, id)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- msg:
				default:
					// Client's send channel is full, skip this message
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Present queues f for every connected client without blocking.
func (h *WebSocketHub) Present(_ context.Context, f models.Frame) error {
	msg := WebSocketMessage{
		Type:      "frame",
		Timestamp: f.Timestamp,
		Frame:     &f,
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Debug("websocket broadcast queue full, frame dropped", zap.String("category", string(f.Category)))
	}
	return nil
}

// Register adds a new client to the hub. It reports false once the hub
// has shut down.
func (h *WebSocketHub) Register(client *ClientConnection) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	if old, exists := h.clients[client.ID]; exists {
		close(old.Send)
	}
	h.clients[client.ID] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("websocket client connected", zap.String("client", client.ID), zap.Int("total", total))
	return true
}

// Unregister removes a client from the hub and closes its send queue
func (h *WebSocketHub) Unregister(clientID string) {
	h.mu.Lock()
	client, exists := h.clients[clientID]
	if exists {
		delete(h.clients, clientID)
		close(client.Send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if exists {
		h.logger.Info("websocket client disconnected", zap.String("client", clientID), zap.Int("total", total))
	}
}

// SendTo queues msg for one client. It reports false when the client is no
// longer connected; a full queue drops msg but still reports true.
func (h *WebSocketHub) SendTo(clientID string, msg WebSocketMessage) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, exists := h.clients[clientID]
	if !exists {
		return false
	}
	select {
	case client.Send <- msg:
	default:
	}
	return true
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
