package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "agora:notifications"

// Event names pushed to clients
const (
	EventNotification = "notification"
	EventRead         = "notification:read"
	EventAllRead      = "notifications:all-read"
	EventNewPost      = "newPost"
	EventNewReaction  = "newReaction"
)

// Event represents a real-time event sent via WebSocket
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub is the presence directory: it maps a user ID to that user's open
// connections and delivers targeted events. With a Redis client attached it
// also bridges events across instances via pub/sub, so a push reaches users
// connected to a different process than the one handling the mutation.
type Hub struct {
	// Registered clients grouped by user ID
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Broadcast to a specific user
	broadcast chan *targetedEvent

	mu          sync.RWMutex
	redisClient *redis.Client

	// Identifies this process on the pub/sub channel. Events delivered
	// locally by SendToUser are skipped when they come back through Redis.
	instanceID string

	ctx    context.Context
	cancel context.CancelFunc
}

type targetedEvent struct {
	UserID string
	Event  *Event
}

// NewHub creates a new Hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *targetedEvent, 256),
		redisClient: redisClient,
		instanceID:  uuid.New().String(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds an authenticated client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// IsConnected reports whether the user has at least one open connection on
// this instance.
func (h *Hub) IsConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.removeClient(client)

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Event)
			if err != nil {
				break
			}
			var stalled []*Client
			h.mu.RLock()
			for client := range h.clients[msg.UserID] {
				select {
				case client.send <- data:
				default:
					stalled = append(stalled, client)
				}
			}
			h.mu.RUnlock()
			// Eviction mutates the client maps, so it runs under the
			// write lock, not inside the read-locked fan-out above.
			for _, client := range stalled {
				h.removeClient(client)
			}

		case <-h.ctx.Done():
			return
		}
	}
}

// removeClient drops a connection from the presence directory and closes its
// send channel. Safe to call twice for the same client.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}
}

// SendToUser sends an event to every open connection of a user. Delivery is
// best effort: with nobody connected the event is dropped and the persisted
// notification row remains the only record.
func (h *Hub) SendToUser(userID string, event *Event) {
	h.broadcast <- &targetedEvent{UserID: userID, Event: event}

	// Publish to Redis for multi-instance delivery
	if h.redisClient != nil {
		msg := &redisMessage{Origin: h.instanceID, UserID: userID, Event: event}
		data, err := json.Marshal(msg)
		if err == nil {
			h.redisClient.Publish(h.ctx, redisPubSubChannel, data) //nolint:errcheck
		}
	}
}

type redisMessage struct {
	Origin string `json:"origin"`
	UserID string `json:"user_id"`
	Event  *Event `json:"event"`
}

// subscribeRedis listens for events published by other instances
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleRedisPayload([]byte(msg.Payload))
		case <-h.ctx.Done():
			return
		}
	}
}

// handleRedisPayload re-broadcasts a pub/sub message locally. Messages this
// instance published are dropped: SendToUser already delivered them to local
// connections, and replaying them here would push every event twice.
func (h *Hub) handleRedisPayload(payload []byte) {
	var rm redisMessage
	if err := json.Unmarshal(payload, &rm); err != nil {
		return
	}
	if rm.Origin == h.instanceID {
		return
	}
	h.broadcast <- &targetedEvent{UserID: rm.UserID, Event: rm.Event}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
