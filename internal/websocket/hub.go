package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ref-intake-be/internal/constant"
	"ref-intake-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans submission events out to connected admin dashboards. Every
// watcher receives every event; there is no per-client targeting. With Redis
// configured, delivery goes through the cluster channel so events published
// on one instance reach watchers on all of them.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Watcher registered", map[string]interface{}{"client_id": client.Id})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Watcher unregistered", map[string]interface{}{"client_id": client.Id})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to every connected watcher. With Redis present
// the payload travels via the cluster channel only, so each instance
// (this one included) delivers it to its local watchers exactly once.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": data,
	})
	if err != nil {
		return
	}

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), constant.ClusterEventsChannel, payload)
		return
	}

	h.sendLocal(payload)
}

func (h *Hub) sendLocal(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer; drop the connection rather than block the hub.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, constant.ClusterEventsChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if !json.Valid([]byte(msg.Payload)) {
			log.Printf("Redis msg parse error: invalid payload")
			continue
		}
		h.sendLocal([]byte(msg.Payload))
	}
}
