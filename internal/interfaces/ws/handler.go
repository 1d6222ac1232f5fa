package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/farmstock/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// clientCommand is the frame a client sends to manage its subscriptions
type clientCommand struct {
	Action string   `json:"action"`
	Topics []string `json:"topics"`
}

// Handler upgrades HTTP requests to websocket connections
type Handler struct {
	hub        *Hub
	jwtService *auth.JWTService
	logger     *zap.Logger
	upgrader   websocket.Upgrader
}

// NewHandler creates a new websocket handler
func NewHandler(hub *Hub, jwtService *auth.JWTService, logger *zap.Logger) *Handler {
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeWS handles GET /ws. The token comes from the `token` query parameter
// or the Authorization header; browsers cannot set headers on ws connections.
func (h *Handler) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		header := c.GetHeader("Authorization")
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}

	claims, err := h.jwtService.ValidateAccessToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(conn, claims.UserID, claims.Role)
	h.hub.register(client)

	go h.writePump(client)
	go h.readPump(client)
}

// readPump consumes subscription commands until the connection drops
func (h *Handler) readPump(client *Client) {
	defer func() {
		h.hub.unregister(client)
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error",
					zap.String("user_id", client.userID),
					zap.Error(err))
			}
			return
		}

		var cmd clientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			h.sendAck(client, Message{Event: "error", Data: "malformed command"})
			continue
		}

		switch cmd.Action {
		case "subscribe":
			accepted := client.Subscribe(cmd.Topics)
			h.sendAck(client, Message{Event: "subscribed", Data: accepted})
		case "unsubscribe":
			client.Unsubscribe(cmd.Topics)
			h.sendAck(client, Message{Event: "unsubscribed", Data: cmd.Topics})
		default:
			h.sendAck(client, Message{Event: "error", Data: "unknown action"})
		}
	}
}

// writePump flushes queued messages and keeps the connection alive with pings
func (h *Handler) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) sendAck(client *Client, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case client.send <- payload:
	default:
	}
}
