package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2/log"

	"github.com/socialhubhq/socialhub/internal/pkg/cache"
)

// Event names pushed to connected dashboard clients.
const (
	EventNewReaction     = "new_reaction"
	EventReactionRemoved = "reaction_removed"
	EventNewComment      = "new_comment"
	EventCommentRemoved  = "comment_removed"
	EventNewReply        = "new_reply"
	EventCommentDeleted  = "comment_deleted"
	EventNewOrder        = "new_order"
	EventOrderUpdated    = "order_updated"
	EventUserBanned      = "user_banned"
	EventUserUnbanned    = "user_unbanned"
	EventUserDataRemoved = "user_data_removed"
	EventDataCleanup     = "data_cleanup"
	EventWebhookCreated  = "webhook_created"
	EventWebhookUpdated  = "webhook_updated"
	EventWebhookDeleted  = "webhook_deleted"
	EventProductCreated  = "product_created"
	EventProductUpdated  = "product_updated"
	EventProductDeleted  = "product_deleted"
)

// PubSubChannel is the Redis channel used to fan events out across
// instances. Every instance subscribes and pushes to its own sockets.
const PubSubChannel = "realtime:events"

// Message is the envelope written to every connected client.
type Message struct {
	Event     string                 `json:"event"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// Hub tracks connected websocket clients and broadcasts events to them
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
	stopCh  chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		stopCh:  make(chan struct{}),
	}
}

// Register adds a client connection to the hub
func (h *Hub) Register(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	log.Debugf("[Realtime] Client connected (%d active)", count)
}

// Unregister removes a client connection from the hub
func (h *Hub) Unregister(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	count := len(h.clients)
	h.mu.Unlock()
	log.Debugf("[Realtime] Client disconnected (%d active)", count)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast publishes an event to the Redis channel. The subscriber loop of
// every instance (this one included) delivers it to local sockets, so an
// event is never written twice to the same client.
func (h *Hub) Broadcast(event string, data map[string]interface{}) {
	msg := Message{
		Event:     event,
		Timestamp: time.Now(),
		Data:      data,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("[Realtime] Failed to marshal event %s: %v", event, err)
		return
	}

	if err := cache.Publish(PubSubChannel, payload); err != nil {
		log.Errorf("[Realtime] Failed to publish event %s: %v", event, err)
		// Redis down; push to local clients directly so the dashboard in
		// front of this instance still updates.
		h.push(payload)
	}
}

// Run consumes the Redis channel and fans messages out to local clients.
// Blocks until Stop is called; run it on its own goroutine.
func (h *Hub) Run() {
	sub := cache.Subscribe(PubSubChannel)
	defer sub.Close()

	ch := sub.Channel()
	log.Info("[Realtime] Hub subscribed to event channel")

	for {
		select {
		case <-h.stopCh:
			log.Info("[Realtime] Hub stopping")
			return
		case msg, ok := <-ch:
			if !ok {
				log.Warn("[Realtime] Event channel closed")
				return
			}
			h.push([]byte(msg.Payload))
		}
	}
}

// Stop terminates the Run loop and closes all client connections
func (h *Hub) Stop() {
	close(h.stopCh)

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.Close()
	}
	h.clients = make(map[*websocket.Conn]struct{})
}

// push writes a raw payload to every connected client
func (h *Hub) push(payload []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			// Dead connection; drop it
			h.Unregister(c)
			_ = c.Close()
		}
	}
}

var (
	defaultHub *Hub
	hubOnce    sync.Once
)

// GetHub returns the global hub (singleton)
func GetHub() *Hub {
	hubOnce.Do(func() {
		defaultHub = NewHub()
	})
	return defaultHub
}

// Broadcast publishes an event through the global hub
func Broadcast(event string, data map[string]interface{}) {
	GetHub().Broadcast(event, data)
}
