package websocket

import (
	"context"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/notify"
)

// Hub maintains the set of connected clients and routes notification
// events to the owning user's connections. When a Redis client is given,
// the hub also consumes the notification pub/sub channel so events
// published by other processes reach local connections.
type Hub struct {
	// Registered clients per user id (one user may hold several tabs)
	clients map[string]map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Events to deliver
	events chan notify.Event

	redis *redis.Client
	log   *logrus.Logger

	mu sync.RWMutex
}

// NewHub creates a new Hub. redis may be nil.
func NewHub(redisClient *redis.Client, log *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan notify.Event, 256),
		redis:      redisClient,
		log:        log,
	}
}

// Run starts the hub loop.
func (h *Hub) Run() {
	if h.redis != nil {
		go h.subscribeToRedis()
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
			h.log.WithField("userId", client.userID).Debug("websocket client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.userID]; ok && conns[client] {
				delete(conns, client)
				close(client.send)
				if len(conns) == 0 {
					delete(h.clients, client.userID)
				}
			}
			h.mu.Unlock()
			h.log.WithField("userId", client.userID).Debug("websocket client unregistered")

		case event := <-h.events:
			h.deliver(event)
		}
	}
}

// Push delivers a notification to the user's local connections. Satisfies
// notify.Pusher for the no-Redis deployment.
func (h *Hub) Push(userID string, notification models.Notification) {
	h.events <- notify.Event{UserID: userID, Notification: notification}
}

func (h *Hub) deliver(event notify.Event) {
	data, err := json.Marshal(event.Notification)
	if err != nil {
		h.log.WithError(err).Error("failed to marshal notification for push")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients[event.UserID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop the connection rather than block the hub
			close(client.send)
			delete(h.clients[event.UserID], client)
		}
	}
}

// subscribeToRedis consumes the notification channel published by
// notify.RedisPublisher.
func (h *Hub) subscribeToRedis() {
	pubsub := h.redis.Subscribe(context.Background(), notify.Channel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var event notify.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			h.log.WithError(err).Error("failed to decode notification event")
			continue
		}
		h.events <- event
	}
}

// ConnectedUsers returns the ids of users with at least one open socket.
func (h *Hub) ConnectedUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]string, 0, len(h.clients))
	for id := range h.clients {
		users = append(users, id)
	}
	return users
}
