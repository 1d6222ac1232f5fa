package ws

import (
	"context"
	"encoding/json"
	"sync"

	appinventory "github.com/farmstock/backend/internal/application/inventory"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Topics clients can subscribe to
const (
	TopicStockRequests     = "stock_requests"
	TopicStockItems        = "stock_items"
	TopicCategories        = "categories"
	TopicStores            = "stores"
	TopicSites             = "sites"
	TopicClients           = "clients"
	TopicMedicationRecords = "medication_records"
)

var validTopics = map[string]struct{}{
	TopicStockRequests:     {},
	TopicStockItems:        {},
	TopicCategories:        {},
	TopicStores:            {},
	TopicSites:             {},
	TopicClients:           {},
	TopicMedicationRecords: {},
}

// IsValidTopic reports whether the topic name is known
func IsValidTopic(topic string) bool {
	_, ok := validTopics[topic]
	return ok
}

// Message is the frame pushed to subscribed clients
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client is a connected websocket peer with its topic subscriptions
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	userID string
	role   string

	mu     sync.RWMutex
	topics map[string]struct{}
}

func newClient(conn *websocket.Conn, userID, role string) *Client {
	return &Client{
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: userID,
		role:   role,
		topics: make(map[string]struct{}),
	}
}

// Subscribe adds the client to the given topics, returning the ones accepted
func (c *Client) Subscribe(topics []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	accepted := make([]string, 0, len(topics))
	for _, topic := range topics {
		if !IsValidTopic(topic) {
			continue
		}
		c.topics[topic] = struct{}{}
		accepted = append(accepted, topic)
	}
	return accepted
}

// Unsubscribe removes the client from the given topics
func (c *Client) Unsubscribe(topics []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, topic := range topics {
		delete(c.topics, topic)
	}
}

func (c *Client) subscribedTo(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.topics[topic]
	return ok
}

// Hub tracks connected clients and fans events out to topic subscribers
type Hub struct {
	logger *zap.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub creates a new websocket hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("websocket client connected",
		zap.String("user_id", client.userID),
		zap.Int("clients", total))
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("websocket client disconnected",
		zap.String("user_id", client.userID),
		zap.Int("clients", total))
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast pushes an event to every client subscribed to the topic.
// Slow clients are skipped rather than blocking the sender.
func (h *Hub) Broadcast(topic, event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal websocket message",
			zap.String("event", event),
			zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if !client.subscribedTo(topic) {
			continue
		}
		select {
		case client.send <- payload:
		default:
			h.logger.Warn("dropping websocket message for slow client",
				zap.String("user_id", client.userID),
				zap.String("event", event))
		}
	}
}

// NotifyLowStock pushes a low stock alert to stock item subscribers
func (h *Hub) NotifyLowStock(_ context.Context, alert appinventory.LowStockAlert) error {
	h.Broadcast(TopicStockItems, "lowStockAlert", alert)
	return nil
}

var _ appinventory.LowStockNotifier = (*Hub)(nil)
