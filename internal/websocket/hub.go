package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now (should be restricted in production)
	},
}

// Client represents a WebSocket client watching a round or a calibration run
type Client struct {
	Topic string
	Conn  *websocket.Conn
	Send  chan []byte
	Hub   *Hub
}

// Hub maintains active WebSocket connections and streams shot-by-shot and
// calibration-progress events to them.
type Hub struct {
	clients      map[*Client]bool
	topicClients map[string][]*Client
	broadcast    chan []byte
	register     chan *Client
	unregister   chan *Client
	logger       *logrus.Logger
	mutex        sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		topicClients: make(map[string][]*Client),
		broadcast:    make(chan []byte, 256),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		logger:       logger,
	}
}

// Run starts the hub and handles client registration/unregistration
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.topicClients[client.Topic] = append(h.topicClients[client.Topic], client)
			h.mutex.Unlock()

			h.logger.WithFields(logrus.Fields{
				"topic":         client.Topic,
				"total_clients": len(h.clients),
			}).Info("WebSocket client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			h.dropClientLocked(client)
			h.mutex.Unlock()

			h.logger.WithFields(logrus.Fields{
				"topic":         client.Topic,
				"total_clients": len(h.clients),
			}).Info("WebSocket client disconnected")

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					h.dropClientLocked(client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// dropClientLocked removes a client from both maps and closes its send
// channel exactly once. Callers hold the write lock.
func (h *Hub) dropClientLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)

	topicClients := h.topicClients[client.Topic]
	for i, c := range topicClients {
		if c == client {
			h.topicClients[client.Topic] = append(topicClients[:i], topicClients[i+1:]...)
			break
		}
	}
	if len(h.topicClients[client.Topic]) == 0 {
		delete(h.topicClients, client.Topic)
	}
}

// HandleWebSocket upgrades a connection subscribed to one topic
func (h *Hub) HandleWebSocket(c *gin.Context) {
	topic := c.Param("topic")
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing topic"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}

	client := &Client{
		Topic: topic,
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Hub:   h,
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastToTopic sends a message to every client watching a topic. Clients
// whose send buffer is full are dropped from the hub entirely, so a stalled
// connection never sees a second send on its closed channel.
func (h *Hub) BroadcastToTopic(topic string, message interface{}) {
	h.mutex.RLock()
	empty := len(h.topicClients[topic]) == 0
	h.mutex.RUnlock()
	if empty {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal WebSocket message")
		return
	}

	h.mutex.Lock()
	// copy: dropping a stalled client mutates the topic slice in place
	clients := append([]*Client(nil), h.topicClients[topic]...)
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.dropClientLocked(client)
		}
	}
	h.mutex.Unlock()
}

// BroadcastToAll sends a message to all connected clients
func (h *Hub) BroadcastToAll(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal WebSocket message")
		return
	}

	h.broadcast <- data
}

// readPump drains and discards client messages until the connection closes
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.WithError(err).Error("WebSocket error")
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.Hub.logger.WithError(err).Error("Failed to write WebSocket message")
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
