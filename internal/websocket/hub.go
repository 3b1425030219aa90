package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"medstory-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	hubModule    = "HUB"
	clusterTopic = "cluster_events"
)

// Message is the envelope pushed to websocket clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clusterEnvelope struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

type Hub struct {
	// id tags messages this instance published so it skips them on the way back.
	id string

	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	// done is closed when Run returns.
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		id:         uuid.NewString(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

// Run owns the client map until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info(hubModule, "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// drop asks Run to unregister client. It gives up once Run has returned.
func (h *Hub) drop(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			client.close()
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info(hubModule, "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
	}
}

// SendToUser delivers to every local connection of the user and, when redis is
// configured, to the user's connections on other instances.
func (h *Hub) SendToUser(userID string, eventType string, payload interface{}) {
	data, err := json.Marshal(Message{Type: eventType, Data: payload})
	if err != nil {
		h.logger.Error(hubModule, "Failed to encode message", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(userID, data)

	if h.rdb != nil {
		envelope, _ := json.Marshal(clusterEnvelope{Origin: h.id, TargetUserID: userID, Message: data})
		if err := h.rdb.Publish(context.Background(), clusterTopic, envelope).Err(); err != nil {
			h.logger.Warn(hubModule, "Failed to publish to redis", map[string]interface{}{"error": err.Error()})
		}
	}
}

// Connected reports how many local connections the user has.
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) deliverLocal(userID string, data []byte) {
	// Held across the sends so remove cannot close a Send channel mid-delivery.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn(hubModule, "Client Send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
			go h.drop(client)
		}
	}
}

// subscribeToRedis relays messages published by other instances to local clients.
// Every instance subscribes to one channel and drops targets it does not hold.
func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterTopic)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var envelope clusterEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				h.logger.Warn(hubModule, "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if envelope.Origin == h.id {
				continue
			}
			h.deliverLocal(envelope.TargetUserID, envelope.Message)
		}
	}
}
