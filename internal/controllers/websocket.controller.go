package controllers

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"menumeters/internal/middleware"
	"menumeters/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WebSocketController upgrades authenticated clients and attaches them to
// the hub.
type WebSocketController struct {
	hub      *services.WebSocketHub
	board    *services.Board
	security *middleware.SecurityLogger
	logger   *zap.Logger
	nextID   atomic.Uint64
}

func NewWebSocketController(hub *services.WebSocketHub, board *services.Board, security *middleware.SecurityLogger, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub:      hub,
		board:    board,
		security: security,
		logger:   logger,
	}
}

// HandleWebSocket handles incoming WebSocket connections. It must run
// behind middleware.RequireToken.
func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	claims, ok := c.MustGet(middleware.ClaimsKey).(*services.CustomClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wc.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	wc.security.LogWebSocketConnected(c.ClientIP(), claims.ClientName)

	id := c.ClientIP() + "-" + claims.ClientName + "-" + strconv.FormatUint(wc.nextID.Add(1), 10)
	client := services.NewClientConnection(id, ws)
	if !wc.hub.Register(client) {
		_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		ws.Close()
		return
	}

	// send what is known right away so the client does not wait a tick
	wc.hub.SendTo(client.ID, wc.snapshot())

	go wc.readPump(client)
	go wc.writePump(client)
}

func (wc *WebSocketController) snapshot() services.WebSocketMessage {
	return services.WebSocketMessage{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Frames:    wc.board.All(),
	}
}

// readPump reads messages from the WebSocket client
func (wc *WebSocketController) readPump(client *services.ClientConnection) {
	defer func() {
		wc.hub.Unregister(client.ID)
		client.Conn.Close()
	}()

	for {
		var msg services.WebSocketMessage
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wc.logger.Debug("websocket read error", zap.String("client", client.ID), zap.Error(err))
			}
			return
		}

		var reply services.WebSocketMessage
		switch msg.Type {
		case "ping":
			reply = services.WebSocketMessage{Type: "pong", Timestamp: time.Now()}
		case "snapshot":
			reply = wc.snapshot()
		case "unsubscribe":
			return
		default:
			reply = services.WebSocketMessage{Type: "error", Timestamp: time.Now(), Error: "unknown message type " + msg.Type}
		}

		if !wc.hub.SendTo(client.ID, reply) {
			return
		}
	}
}

// writePump writes messages to the WebSocket client
func (wc *WebSocketController) writePump(client *services.ClientConnection) {
	defer client.Conn.Close()

	for msg := range client.Send {
		_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.Conn.WriteJSON(msg); err != nil {
			wc.logger.Debug("websocket write error", zap.String("client", client.ID), zap.Error(err))
			return
		}
	}
	_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
